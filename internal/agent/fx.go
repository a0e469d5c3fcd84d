package agent

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/internal/config"
)

var Module = fx.Module("agent.service",
	fx.Provide(func(client *redis.Client, cfg *config.Config) *SessionStore {
		return NewSessionStore(client, cfg.SessionTTL)
	}),
	fx.Provide(New),
)
