// Package redisstore guarda en Redis los códigos de verificación (OTP).
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
)

var _ repository.OTPRepository = (*OTPStore)(nil)

// OTPStore un registro JSON por email bajo prefix:email, con expiración nativa de Redis.
type OTPStore struct {
	rdb    *redis.Client
	prefix string
}

// OTPStoreOption ajusta el almacén al construirlo.
type OTPStoreOption func(*OTPStore)

// WithPrefix cambia el prefijo de las claves (por defecto "otp").
func WithPrefix(prefix string) OTPStoreOption {
	return func(s *OTPStore) { s.prefix = strings.Trim(prefix, ":") }
}

// NewOTPStore construye el almacén. prefix por defecto "otp".
func NewOTPStore(rdb *redis.Client, opts ...OTPStoreOption) *OTPStore {
	s := &OTPStore{rdb: rdb, prefix: "otp"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *OTPStore) key(email string) string {
	return s.prefix + ":" + strings.ToLower(email)
}

func (s *OTPStore) lockKey(email string) string {
	return s.prefix + ":lock:" + strings.ToLower(email)
}

// Get devuelve nil, nil si no hay registro (o ya expiró).
func (s *OTPStore) Get(ctx context.Context, email string) (*entity.OTPRecord, error) {
	raw, err := s.rdb.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get otp: %w", err)
	}
	var rec entity.OTPRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode otp: %w", err)
	}
	return &rec, nil
}

// Save serializa el registro en JSON y lo guarda con expiración ttl.
func (s *OTPStore) Save(ctx context.Context, rec *entity.OTPRecord, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode otp: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(rec.Email), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set otp: %w", err)
	}
	return nil
}

// Delete borra el registro del email; no falla si no existe.
func (s *OTPStore) Delete(ctx context.Context, email string) error {
	if err := s.rdb.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("redis del otp: %w", err)
	}
	return nil
}

// Lock toma la reserva del email con SET NX PX; expira sola tras ttl.
func (s *OTPStore) Lock(ctx context.Context, email string, ttl time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, s.lockKey(email), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx otp lock: %w", err)
	}
	return ok, nil
}

// Unlock libera la reserva del email.
func (s *OTPStore) Unlock(ctx context.Context, email string) error {
	if err := s.rdb.Del(ctx, s.lockKey(email)).Err(); err != nil {
		return fmt.Errorf("redis del otp lock: %w", err)
	}
	return nil
}

// NewClient abre el cliente y verifica la conexión con un PING de 2 s.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
