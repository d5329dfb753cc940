package store

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisWithClient(client), m
}

func TestPutGetRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	record := map[string]any{
		"latitude":  10.5,
		"longitude": -20.25,
		"nested":    map[string]any{"a": []any{1.0, 2.0, "three"}},
	}
	if err := s.Put(ctx, "k", record); err != nil {
		t.Fatalf("Put: %v", err)
	}

	raw, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal stored value: %v", err)
	}
	if !reflect.DeepEqual(got, record) {
		t.Fatalf("value did not round trip: got %v, want %v", got, record)
	}
}

func TestPutReplacesWholeDocument(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k", map[string]any{"a": 1.0, "b": 2.0}); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := s.Put(ctx, "k", map[string]any{"c": 3.0}); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	raw, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, stale := got["a"]; stale || got["c"] != 3.0 {
		t.Fatalf("expected full replacement, got %v", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.Get(context.Background(), "absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAbsentKeyIsNotAnError(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Delete(context.Background(), "absent"); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
}

func TestListAll(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := s.Put(ctx, key, key+"-value"); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}
	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(all))
	}
	var v string
	if err := json.Unmarshal(all["b"], &v); err != nil || v != "b-value" {
		t.Fatalf("unexpected value for b: %s (%v)", all["b"], err)
	}
}

func TestPurgeAllReturnsSnapshotAndEmptiesStore(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"x", "y"} {
		if err := s.Put(ctx, key, map[string]any{"k": key}); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	snapshot, err := s.PurgeAll(ctx)
	if err != nil {
		t.Fatalf("PurgeAll: %v", err)
	}
	if len(snapshot) != 2 {
		t.Fatalf("expected full pre-purge snapshot, got %d entries", len(snapshot))
	}

	after, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll after purge: %v", err)
	}
	if len(after) != 0 {
		t.Fatalf("expected empty store after purge, got %v", after)
	}
}

func TestUnreachableStoreConvertsToErrUnavailable(t *testing.T) {
	s, m := newTestStore(t)
	ctx := context.Background()
	m.Close()

	if err := s.Put(ctx, "k", "v"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Put: expected ErrUnavailable, got %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Get: expected ErrUnavailable, got %v", err)
	}
	if err := s.Delete(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Delete: expected ErrUnavailable, got %v", err)
	}
	if _, err := s.ListAll(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("ListAll: expected ErrUnavailable, got %v", err)
	}
	if _, err := s.PurgeAll(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("PurgeAll: expected ErrUnavailable, got %v", err)
	}
}
