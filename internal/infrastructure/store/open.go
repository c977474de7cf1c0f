package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-console/pkg/config"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// Open construye el backend indicado por SESSION_STORE. closeFn libera las conexiones abiertas.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.CredentialStore, func(), error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		rdb, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("addr", cfg.Redis.Addr).Str("context", cfg.Session.Context).Msg("almacén de sesión en redis")
		return NewRedisStore(rdb, cfg.Redis.KeyPrefix, cfg.Session.Context), func() { _ = rdb.Close() }, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conectar base de datos: %w", err)
		}
		if err := postgres.EnsureSessionSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Debug().Str("context", cfg.Session.Context).Msg("almacén de sesión en postgres")
		return NewPostgresStore(pool, cfg.Session.Context), pool.Close, nil

	default:
		log.Debug().Str("file", cfg.Session.File).Msg("almacén de sesión en archivo")
		return NewFileStore(cfg.Session.File), func() {}, nil
	}
}
