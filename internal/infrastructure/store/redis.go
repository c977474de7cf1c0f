package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/config"
)

var _ repository.CredentialStore = (*RedisStore)(nil)

// RedisStore guarda la sesión en dos claves, <prefix>:<context>:user (hash) y
// <prefix>:<context>:token, para que varias consolas compartan sesión por contexto.
type RedisStore struct {
	rdb  redis.UniversalClient
	user string
	tok  string
}

// NewRedisClient abre el cliente y comprueba la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// NewRedisStore crea el almacén sobre rdb con las claves de prefix y sessionContext.
func NewRedisStore(rdb redis.UniversalClient, prefix, sessionContext string) *RedisStore {
	base := prefix + ":" + sessionContext
	return &RedisStore{rdb: rdb, user: base + ":user", tok: base + ":token"}
}

// Load devuelve la sesión del contexto o nil si no hay.
func (s *RedisStore) Load(ctx context.Context) (*entity.Session, error) {
	fields, err := s.rdb.HGetAll(ctx, s.user).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", s.user, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	token := fields["token"]
	if token == "" {
		token, err = s.rdb.Get(ctx, s.tok).Result()
		if err != nil && err != redis.Nil {
			return nil, fmt.Errorf("redis get %s: %w", s.tok, err)
		}
	}
	return &entity.Session{Token: token, Role: entity.Role(fields["role"]), Identity: fields["email"]}, nil
}

// Save escribe ambas claves en una transacción.
func (s *RedisStore) Save(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return s.Clear(ctx)
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.user)
		pipe.HSet(ctx, s.user, "token", session.Token, "role", string(session.Role), "email", session.Identity)
		pipe.Set(ctx, s.tok, session.Token, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis guardar sesión: %w", err)
	}
	return nil
}

// Clear borra ambas claves.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.user, s.tok).Err(); err != nil {
		return fmt.Errorf("redis borrar sesión: %w", err)
	}
	return nil
}
