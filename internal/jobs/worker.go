package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/docpipe"
	"github.com/invoicetradeai-create/bizzauto-project/internal/observability/metrics"
	"github.com/invoicetradeai-create/bizzauto-project/internal/ocr"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/repository"
	"github.com/invoicetradeai-create/bizzauto-project/pkg/tenantctx"
)

const dequeueTimeout = 5 * time.Second

// Worker pulls one document per job and runs it through OCR and the
// document pipeline. The OCR call always completes before any database
// transaction opens.
type Worker struct {
	log         *zap.Logger
	queue       Queue
	oracle      ocr.Oracle
	processor   *docpipe.Processor
	docs        repository.Repository[docpipe.UploadedDoc]
	metrics     *metrics.Metrics
	concurrency int
	jobTimeout  time.Duration
}

type WorkerConfig struct {
	Concurrency int
	JobTimeout  time.Duration
}

func NewWorker(
	db *gorm.DB,
	log *zap.Logger,
	queue Queue,
	oracle ocr.Oracle,
	processor *docpipe.Processor,
	m *metrics.Metrics,
	cfg WorkerConfig,
) *Worker {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	jobTimeout := cfg.JobTimeout
	if jobTimeout <= 0 {
		jobTimeout = 2 * time.Minute
	}
	return &Worker{
		log:         log.Named("jobs.worker"),
		queue:       queue,
		oracle:      oracle,
		processor:   processor,
		docs:        repository.ProvideStore[docpipe.UploadedDoc](db),
		metrics:     m,
		concurrency: concurrency,
		jobTimeout:  jobTimeout,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	done := make(chan struct{}, w.concurrency)
	for i := 0; i < w.concurrency; i++ {
		go func(id int) {
			defer func() { done <- struct{}{} }()
			w.loop(ctx, id)
		}(i)
	}
	for i := 0; i < w.concurrency; i++ {
		<-done
	}
}

func (w *Worker) loop(ctx context.Context, id int) {
	log := w.log.With(zap.Int("worker", id))
	log.Info("worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info("worker stopped")
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("dequeue failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}
		w.Process(ctx, *job)
	}
}

// Process runs one job to its terminal state. Exported so the worker
// binary and tests can drive jobs without the queue loop.
func (w *Worker) Process(ctx context.Context, job Job) {
	log := w.log.With(
		zap.String("document_id", job.DocumentID.String()),
		zap.String("company_id", job.CompanyID.String()),
	)
	if w.metrics != nil {
		w.metrics.JobsInFlight.Inc()
		defer w.metrics.JobsInFlight.Dec()
	}

	ctx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()
	ctx = tenantctx.WithCompanyID(ctx, job.CompanyID)

	doc, err := w.docs.FindOne(ctx, &docpipe.UploadedDoc{ID: job.DocumentID, CompanyID: job.CompanyID})
	if err != nil || doc == nil {
		log.Error("document lookup failed", zap.Error(err))
		return
	}
	if doc.Status == docpipe.DocStatusPersisted {
		log.Info("document already persisted, skipping")
		return
	}

	data, err := os.ReadFile(doc.StoragePath)
	if err != nil {
		log.Error("document read failed", zap.Error(err))
		w.markFailed(ctx, doc, "document unreadable: "+err.Error())
		return
	}

	ocrStart := time.Now()
	text, err := w.oracle.ExtractText(ctx, data)
	if w.metrics != nil {
		w.metrics.OcrDuration.Observe(time.Since(ocrStart).Seconds())
	}
	if err != nil {
		reason := docpipe.ErrOcrUnavailable.Error()
		if errors.Is(err, ocr.ErrCredential) {
			reason = ocr.ErrCredential.Error()
		}
		log.Warn("ocr failed", zap.Error(err))
		w.markFailed(ctx, doc, reason)
		return
	}

	result := w.processor.ParseAndPersist(ctx, text, job.CompanyID, job.IdempotencyKey)
	if w.metrics != nil {
		w.metrics.DocsProcessed.WithLabelValues(string(result.Status)).Inc()
	}

	update := map[string]any{
		"status":     string(result.Status),
		"updated_at": time.Now().UTC(),
	}
	if result.Status == docpipe.StatusFailed {
		update["failure_reason"] = result.FailureReason
	}
	if result.InvoiceID != nil {
		update["invoice_id"] = *result.InvoiceID
	}
	if len(result.Warnings) > 0 {
		if raw, err := json.Marshal(result.Warnings); err == nil {
			update["warnings"] = datatypes.JSON(raw)
		}
	}
	if err := w.docs.Update(ctx, doc.ID.String(), update); err != nil {
		log.Error("document status update failed", zap.Error(err))
	}

	log.Info("document processed",
		zap.String("status", string(result.Status)),
		zap.Int("items", result.ItemsProcessed),
		zap.Strings("warnings", result.Warnings))
}

func (w *Worker) markFailed(ctx context.Context, doc *docpipe.UploadedDoc, reason string) {
	err := w.docs.Update(ctx, doc.ID.String(), map[string]any{
		"status":         docpipe.DocStatusFailed,
		"failure_reason": reason,
		"updated_at":     time.Now().UTC(),
	})
	if err != nil {
		w.log.Error("failed to mark document failed", zap.Error(err))
	}
}
