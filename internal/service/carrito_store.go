package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CarritoStore keeps the Building-state cart per (centro, cajero). The cart
// lives outside the database on purpose: it has no persisted identity until
// it is charged, and an abandoned session simply expires.
type CarritoStore interface {
	Get(ctx context.Context, centro, cajero string) (*Carrito, error)
	Save(ctx context.Context, centro, cajero string, c *Carrito) error
	Delete(ctx context.Context, centro, cajero string) error
}

// ── Redis-backed store ───────────────────────────────────────────────────────

const carritoTTL = 12 * time.Hour

type redisCarritoStore struct{ rdb *redis.Client }

func NewRedisCarritoStore(rdb *redis.Client) CarritoStore { return &redisCarritoStore{rdb: rdb} }

func carritoKey(centro, cajero string) string {
	return fmt.Sprintf("carrito:%s:%s", centro, cajero)
}

func (s *redisCarritoStore) Get(ctx context.Context, centro, cajero string) (*Carrito, error) {
	raw, err := s.rdb.Get(ctx, carritoKey(centro, cajero)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &Carrito{}, nil
	}
	if err != nil {
		return nil, err
	}
	var c Carrito
	if err := json.Unmarshal(raw, &c); err != nil {
		// Corrupt session — start over rather than blocking the cashier.
		return &Carrito{}, nil
	}
	return &c, nil
}

func (s *redisCarritoStore) Save(ctx context.Context, centro, cajero string, c *Carrito) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, carritoKey(centro, cajero), raw, carritoTTL).Err()
}

func (s *redisCarritoStore) Delete(ctx context.Context, centro, cajero string) error {
	return s.rdb.Del(ctx, carritoKey(centro, cajero)).Err()
}

// ── In-memory store (tests, single-node dev without Redis) ───────────────────

type memCarritoStore struct {
	mu sync.Mutex
	m  map[string]*Carrito
}

func NewMemCarritoStore() CarritoStore {
	return &memCarritoStore{m: make(map[string]*Carrito)}
}

func (s *memCarritoStore) Get(_ context.Context, centro, cajero string) (*Carrito, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.m[carritoKey(centro, cajero)]; ok {
		cp := *c
		cp.Lineas = append([]LineaCarrito(nil), c.Lineas...)
		return &cp, nil
	}
	return &Carrito{}, nil
}

func (s *memCarritoStore) Save(_ context.Context, centro, cajero string, c *Carrito) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	cp.Lineas = append([]LineaCarrito(nil), c.Lineas...)
	s.m[carritoKey(centro, cajero)] = &cp
	return nil
}

func (s *memCarritoStore) Delete(_ context.Context, centro, cajero string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, carritoKey(centro, cajero))
	return nil
}
