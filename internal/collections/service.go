// Package collections implements the data operations built on the
// document store: generic enqueue, per-user location documents, and
// cache inspection/purge. All persistence goes through the store
// adapter; key construction lives here.
package collections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"twtr.dev/backend/internal/auth"
	"twtr.dev/backend/internal/ids"
	"twtr.dev/backend/internal/store"
)

// ErrMissingData reports a required input that was absent. A caller
// error; never retried.
var ErrMissingData = errors.New("collections: missing data")

// EnqueueStatus is the outcome of a generic enqueue.
type EnqueueStatus string

const (
	StatusEnqueued EnqueueStatus = "Enqueued."
	StatusDropped  EnqueueStatus = "Dropped."
	StatusFailed   EnqueueStatus = "Not enqueued."
)

// probeRecord is the fixed payload written by the enqueue probe.
const probeRecord = "no_mr_bond_I_want_you_to_die"

// Location is a user position document. Heading and speed are optional
// and stored as null when absent.
type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Heading   *float64 `json:"heading"`
	Speed     *float64 `json:"speed"`
}

// Service exposes the data operations. When pushEnabled is false,
// enqueue-style writes are acknowledged as dropped without touching the
// store.
type Service struct {
	store       store.Store
	pushEnabled bool
}

// NewService constructs the data operations service.
func NewService(st store.Store, pushEnabled bool) *Service {
	return &Service{store: st, pushEnabled: pushEnabled}
}

func locationKey(userID string) string {
	return fmt.Sprintf("user:%s:location", userID)
}

// Enqueue writes record at key. The path argument is accepted for
// compatibility with the old store client but ignored: every write is a
// whole-document replacement.
func (s *Service) Enqueue(ctx context.Context, key, _ string, record any) (EnqueueStatus, error) {
	if key == "" || record == nil {
		return StatusFailed, ErrMissingData
	}
	if !s.pushEnabled {
		return StatusDropped, nil
	}
	if err := s.store.Put(ctx, key, record); err != nil {
		return StatusFailed, err
	}
	return StatusEnqueued, nil
}

// EnqueueProbe writes the fixed probe record under a random numeric key
// and returns the key. Used by the GET probe endpoint.
func (s *Service) EnqueueProbe(ctx context.Context) (string, EnqueueStatus, error) {
	key := ids.NumericKey()
	status, err := s.Enqueue(ctx, key, ".", probeRecord)
	return key, status, err
}

// SetLocation validates and stores a user's position. UserID, latitude
// and longitude are required; heading and speed stay null when omitted.
func (s *Service) SetLocation(ctx context.Context, userID string, loc Location) (EnqueueStatus, error) {
	if userID == "" || loc.Latitude == nil || loc.Longitude == nil {
		return StatusFailed, ErrMissingData
	}
	if !s.pushEnabled {
		return StatusDropped, nil
	}
	if err := s.store.Put(ctx, locationKey(userID), loc); err != nil {
		return StatusFailed, err
	}
	return StatusEnqueued, nil
}

// GetLocation returns the stored position document for userID, or
// store.ErrNotFound when none was ever set.
func (s *Service) GetLocation(ctx context.Context, userID string) (json.RawMessage, error) {
	if userID == "" {
		return nil, ErrMissingData
	}
	return s.store.Get(ctx, locationKey(userID))
}

// CurrentUser returns the profile snapshot of the most recently
// authenticated user.
func (s *Service) CurrentUser(ctx context.Context) (json.RawMessage, error) {
	return s.store.Get(ctx, auth.CurrentUserKey)
}

// ListCache returns every document in the store. O(n) over the store,
// diagnostic use only.
func (s *Service) ListCache(ctx context.Context) (map[string]json.RawMessage, error) {
	return s.store.ListAll(ctx)
}

// PurgeCache deletes every document and returns the pre-purge snapshot.
// The per-key purge race with concurrent writers is accepted behavior,
// inherited from the store adapter.
func (s *Service) PurgeCache(ctx context.Context) (map[string]json.RawMessage, error) {
	return s.store.PurgeAll(ctx)
}
