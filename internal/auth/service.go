// Package auth implements the credential lifecycle: login verifies a
// password and mints a token pair, renew exchanges any still-valid token
// of a pair for a fresh pair, and verify gates protected operations.
// Tokens are symmetric-signed and stateless, so verification needs no
// store round trip and the authority carries no mutable session state.
package auth

import (
	"context"
	"errors"
	"time"

	"twtr.dev/backend/internal/obs"
	"twtr.dev/backend/internal/registry"
	"twtr.dev/backend/internal/store"
)

// CurrentUserKey is the fixed document key holding the profile snapshot
// of the most recently authenticated user. Written on every successful
// login; read by the /get-user1-data endpoint.
const CurrentUserKey = "user1_data"

// TokenPair bundles the short-lived access token with the long-lived
// refresh token minted for the same subject.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service is the credential authority. Registry and secret are fixed at
// construction; the store is used only for the login snapshot side
// effect.
type Service struct {
	registry   *registry.Registry
	store      store.Store
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService constructs the authority from the startup-initialized
// registry and configuration values.
func NewService(reg *registry.Registry, st store.Store, secret []byte, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		registry:   reg,
		store:      st,
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Login checks name/password against the registry and mints a token
// pair. As a side effect it writes the authenticated user's snapshot to
// the fixed current-user key; a store failure there is logged but does
// not fail the login.
func (s *Service) Login(ctx context.Context, name, password string) (TokenPair, string, error) {
	user, err := s.registry.FindByName(name)
	if err != nil {
		obs.ObserveAuth("login", "unknown_user")
		return TokenPair{}, "", ErrUnknownUser
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		obs.ObserveAuth("login", "invalid_credentials")
		return TokenPair{}, "", ErrInvalidCredentials
	}

	pair, err := s.mintPair(user.ID)
	if err != nil {
		obs.ObserveAuth("login", "error")
		return TokenPair{}, "", err
	}

	snapshot := map[string]string{"name": name, "password": password}
	if err := s.store.Put(ctx, CurrentUserKey, snapshot); err != nil {
		obs.Event("warn", "current user snapshot write failed", map[string]any{"error": err.Error()})
	}

	obs.ObserveAuth("login", "ok")
	return pair, user.Name, nil
}

// Renew exchanges a token pair for a fresh one. The access token is
// tried first; if it resolves to a known subject the pair is reissued
// even when the token was still valid (renew-on-every-call). Otherwise
// the refresh token is tried under the same rule. When neither resolves,
// the caller must log in again.
func (s *Service) Renew(access, refresh string) (TokenPair, error) {
	subject, err := s.resolveSubject(access, ClassAccess)
	if err != nil {
		subject, err = s.resolveSubject(refresh, ClassRefresh)
	}
	if err != nil {
		obs.ObserveAuth("renew", "rejected")
		return TokenPair{}, ErrReauthRequired
	}

	pair, err := s.mintPair(subject)
	if err != nil {
		obs.ObserveAuth("renew", "error")
		return TokenPair{}, err
	}
	obs.ObserveAuth("renew", "ok")
	return pair, nil
}

// Verify gates protected operations: it decodes an access token and
// returns the subject id. Every failure collapses to ErrReauthRequired.
func (s *Service) Verify(token string) (int, error) {
	subject, err := s.resolveSubject(token, ClassAccess)
	if err != nil {
		obs.ObserveAuth("verify", "rejected")
		return 0, ErrReauthRequired
	}
	return subject, nil
}

func (s *Service) resolveSubject(token string, class TokenClass) (int, error) {
	subject, err := DecodeToken(token, class, s.secret)
	if err != nil {
		// Expired vs tampered is interesting for the logs but must not
		// reach the caller.
		if errors.Is(err, ErrTokenExpired) {
			obs.Event("info", "token expired", map[string]any{"class": string(class)})
		}
		return 0, err
	}
	if _, err := s.registry.FindByID(subject); err != nil {
		return 0, ErrReauthRequired
	}
	return subject, nil
}

func (s *Service) mintPair(subject int) (TokenPair, error) {
	access, err := EncodeToken(subject, ClassAccess, s.accessTTL, s.secret)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := EncodeToken(subject, ClassRefresh, s.refreshTTL, s.secret)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
