package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type stubRedisKV struct {
	setKey    string
	setTTL    time.Duration
	existsKey string
	delKey    string

	setErr    error
	existsErr error
	delErr    error
	existsN   int64
}

func (s *stubRedisKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	s.setKey, s.setTTL = key, expiration
	cmd := redis.NewStatusCmd(ctx)
	if s.setErr != nil {
		cmd.SetErr(s.setErr)
	} else {
		cmd.SetVal("OK")
	}
	return cmd
}

func (s *stubRedisKV) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	if len(keys) > 0 {
		s.existsKey = keys[0]
	}
	cmd := redis.NewIntCmd(ctx)
	if s.existsErr != nil {
		cmd.SetErr(s.existsErr)
	} else {
		cmd.SetVal(s.existsN)
	}
	return cmd
}

func (s *stubRedisKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if len(keys) > 0 {
		s.delKey = keys[0]
	}
	cmd := redis.NewIntCmd(ctx)
	if s.delErr != nil {
		cmd.SetErr(s.delErr)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

func TestMemoryRefreshTokenStore_Lifecycle(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	if ok, err := store.Exists("nope"); err != nil || ok {
		t.Fatalf("expected unknown jti absent, got %v,%v", ok, err)
	}
	if err := store.Store("", "user-1", time.Minute); err != nil {
		t.Fatalf("empty jti should be a no-op, got %v", err)
	}

	if err := store.Store("r-abc", "user-1", 40*time.Millisecond); err != nil {
		t.Fatalf("store: %v", err)
	}
	if ok, err := store.Exists("r-abc"); err != nil || !ok {
		t.Fatalf("expected jti present, got %v,%v", ok, err)
	}

	time.Sleep(60 * time.Millisecond)
	if ok, err := store.Exists("r-abc"); err != nil || ok {
		t.Fatalf("expected jti expired, got %v,%v", ok, err)
	}

	if err := store.Store("r-def", "user-1", time.Minute); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.Revoke("r-def"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, err := store.Exists("r-def"); err != nil || ok {
		t.Fatalf("expected revoked jti absent, got %v,%v", ok, err)
	}
}

func TestRedisRefreshTokenStore_KeysAndTTL(t *testing.T) {
	stub := &stubRedisKV{existsN: 1}
	store := &redisRefreshTokenStore{client: stub, prefix: "auth:refresh:"}

	// El jti llega del claim, puede venir con espacios; el TTL cero cae al
	// fallback de 30 días.
	if err := store.Store(" r-1 ", "user-1", 0); err != nil {
		t.Fatalf("store: %v", err)
	}
	if stub.setKey != "auth:refresh:r-1" {
		t.Fatalf("unexpected set key %q", stub.setKey)
	}
	if stub.setTTL <= 0 {
		t.Fatalf("expected positive TTL fallback, got %v", stub.setTTL)
	}

	if ok, err := store.Exists(" r-1 "); err != nil || !ok {
		t.Fatalf("expected exists true, got %v,%v", ok, err)
	}
	if stub.existsKey != "auth:refresh:r-1" {
		t.Fatalf("unexpected exists key %q", stub.existsKey)
	}

	if err := store.Revoke(" r-1 "); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if stub.delKey != "auth:refresh:r-1" {
		t.Fatalf("unexpected del key %q", stub.delKey)
	}
}

func TestRedisRefreshTokenStore_EmptyJTIAndErrors(t *testing.T) {
	stub := &stubRedisKV{
		setErr:    errors.New("set down"),
		existsErr: errors.New("exists down"),
		delErr:    errors.New("del down"),
	}
	store := &redisRefreshTokenStore{client: stub, prefix: "auth:refresh:"}

	if err := store.Store("", "user-1", time.Minute); err != nil {
		t.Fatalf("empty jti store should be a no-op, got %v", err)
	}
	if ok, err := store.Exists(""); err != nil || ok {
		t.Fatalf("empty jti should read absent, got %v,%v", ok, err)
	}
	if err := store.Revoke(""); err != nil {
		t.Fatalf("empty jti revoke should be a no-op, got %v", err)
	}

	if err := store.Store("r-2", "user-1", time.Minute); err == nil {
		t.Fatalf("expected store error")
	}
	if _, err := store.Exists("r-2"); err == nil {
		t.Fatalf("expected exists error")
	}
	if err := store.Revoke("r-2"); err == nil {
		t.Fatalf("expected revoke error")
	}
}
