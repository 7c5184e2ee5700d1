// Package factory builds backing entity stores from configuration.
package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeu/chatstore/internal/config"
	"github.com/codeu/chatstore/internal/entitystore"
	"github.com/codeu/chatstore/internal/entitystore/memory"
	"github.com/codeu/chatstore/internal/entitystore/postgres"
	"github.com/codeu/chatstore/internal/entitystore/sqlite"
)

// NewEntityStore returns the configured entitystore driver. For postgres the
// connection is opened synchronously so health checks can use it immediately,
// while schema bootstrap runs async with a bounded timeout.
func NewEntityStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (entitystore.Store, error) {
	switch cfg.Driver {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath)
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		go func() {
			to := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
			bootstrapCtx, cancel := context.WithTimeout(ctx, to)
			defer cancel()
			if err := postgres.Bootstrap(bootstrapCtx, db); err != nil {
				log.Warn().Err(err).Str("driver", cfg.Driver).Msg("entity store bootstrap failed")
			} else {
				log.Debug().Str("driver", cfg.Driver).Msg("entity store bootstrap completed")
			}
		}()
		return postgres.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unknown DRIVER: %s", cfg.Driver)
	}
}
