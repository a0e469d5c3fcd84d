package jobs

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/config"
	"github.com/invoicetradeai-create/bizzauto-project/internal/docpipe"
	"github.com/invoicetradeai-create/bizzauto-project/internal/observability/metrics"
	"github.com/invoicetradeai-create/bizzauto-project/internal/ocr"
)

var Module = fx.Module("jobs",
	fx.Provide(func(client *redis.Client, cfg *config.Config) Queue {
		return NewRedisQueue(client, cfg.OcrQueueKey)
	}),
	fx.Provide(func(db *gorm.DB, log *zap.Logger, queue Queue, oracle ocr.Oracle, processor *docpipe.Processor, m *metrics.Metrics, cfg *config.Config) *Worker {
		return NewWorker(db, log, queue, oracle, processor, m, WorkerConfig{
			Concurrency: cfg.WorkerConcurrency,
			JobTimeout:  cfg.JobTimeout,
		})
	}),
)

// RunModule starts the worker loop under the fx lifecycle. Only the worker
// binary includes it; the API binary enqueues and returns.
var RunModule = fx.Module("jobs.run",
	fx.Invoke(func(lc fx.Lifecycle, w *Worker) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() {
					defer close(done)
					w.Run(ctx)
				}()
				return nil
			},
			OnStop: func(stopCtx context.Context) error {
				cancel()
				select {
				case <-done:
				case <-stopCtx.Done():
				}
				return nil
			},
		})
	}),
)
