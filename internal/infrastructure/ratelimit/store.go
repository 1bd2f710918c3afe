// Package ratelimit mantiene un token-bucket (x/time/rate) por clave, típicamente la IP.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Store cache de limitadores por clave con limpieza periódica de las inactivas.
type Store struct {
	mu           sync.Mutex
	entries      map[string]*storeEntry
	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
	now          func() time.Time
}

type storeEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// StoreOption configura el Store en NewStore.
type StoreOption func(*Store)

// WithIdleTTL tiempo sin tráfico tras el cual Cleanup descarta el bucket de una clave.
func WithIdleTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.idleTTL = ttl }
}

// WithCleanupEvery periodo del janitor; 0 o negativo lo desactiva.
func WithCleanupEvery(every time.Duration) StoreOption {
	return func(s *Store) { s.cleanupEvery = every }
}

// WithClock reloj inyectable para tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore crea un limitador por clave: rps tokens por segundo y ráfaga burst.
// Por defecto descarta claves inactivas 15 min y limpia cada 2 min.
func NewStore(rps float64, burst int, opts ...StoreOption) *Store {
	s := &Store{
		entries:      make(map[string]*storeEntry),
		rps:          rate.Limit(rps),
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow consume un token de la clave. Devuelve false si el bucket está vacío.
func (s *Store) Allow(key string) bool {
	now := s.now()
	return s.get(key, now).AllowN(now, 1)
}

// RetryAfter espera sugerida hasta el próximo token (redondeada hacia arriba a segundos).
func (s *Store) RetryAfter() time.Duration {
	if s.rps <= 0 {
		return time.Minute
	}
	d := time.Duration(float64(time.Second) / float64(s.rps))
	if d < time.Second {
		return time.Second
	}
	return d.Round(time.Second)
}

func (s *Store) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}
	lim := rate.NewLimiter(s.rps, s.burst)
	s.entries[key] = &storeEntry{lim: lim, lastSeen: now}
	return lim
}

// Len número de claves vivas.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cleanup elimina las claves sin actividad en idleTTL.
func (s *Store) Cleanup() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor limpia claves inactivas periódicamente hasta que ctx se cancele.
func (s *Store) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}
	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
