package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	values map[string]string

	setKey string
	setTTL time.Duration
	delKey string
	err    error
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.setKey = key
	m.setTTL = ttl
	m.values[key] = "1"
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	value, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	if m.err != nil {
		return m.err
	}
	for _, key := range keys {
		m.delKey = key
		delete(m.values, key)
	}
	return nil
}

type mockKeyer struct{}

func (mockKeyer) AccessSessionKey(accessID string) string {
	return "sb:session:access:" + accessID
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{store: store, keyer: mockKeyer{}, ttl: time.Hour}
}

func TestTrackThenHasSession(t *testing.T) {
	store := &mockStore{}
	mgr := newTestManager(store)

	if err := mgr.Track(context.Background(), "jti-1"); err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if store.setTTL != time.Hour {
		t.Fatalf("expected ttl from config got %v", store.setTTL)
	}

	ok, err := mgr.HasSession(context.Background(), "jti-1")
	if err != nil {
		t.Fatalf("has session failed: %v", err)
	}
	if !ok {
		t.Fatal("expected live session")
	}
}

func TestHasSessionMissingIsNotError(t *testing.T) {
	mgr := newTestManager(&mockStore{})

	ok, err := mgr.HasSession(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("missing session should not error: %v", err)
	}
	if ok {
		t.Fatal("expected no session")
	}
}

func TestRevokeKillsSession(t *testing.T) {
	store := &mockStore{}
	mgr := newTestManager(store)

	if err := mgr.Track(context.Background(), "jti-1"); err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if err := mgr.Revoke(context.Background(), "jti-1"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	ok, err := mgr.HasSession(context.Background(), "jti-1")
	if err != nil {
		t.Fatalf("has session failed: %v", err)
	}
	if ok {
		t.Fatal("expected revoked session to be gone")
	}
}

func TestEmptyAccessIDRejected(t *testing.T) {
	mgr := newTestManager(&mockStore{})

	if err := mgr.Track(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty access id")
	}
	if err := mgr.Revoke(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty access id")
	}
	if _, err := mgr.HasSession(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty access id")
	}
}
