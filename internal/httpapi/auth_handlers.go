package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"twtr.dev/backend/internal/audit"
	"twtr.dev/backend/internal/auth"
)

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Name         string `json:"name"`
}

type renewRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type renewResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "name and password are required")
		return
	}

	pair, name, err := a.auth.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownUser), errors.Is(err, auth.ErrInvalidCredentials):
			// Deliberately indistinguishable to the caller; the audit
			// log keeps the detail.
			_ = audit.LogEvent(r.Context(), "auth.login.rejected", map[string]any{
				"name":   req.Name,
				"reason": err.Error(),
			})
			respondUnauthorized(w, r)
		default:
			writeError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.login", map[string]any{"name": name})
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Name:         name,
	})
}

func (a *API) handleRenew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req renewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	pair, err := a.auth.Renew(req.AccessToken, req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrReauthRequired) {
			_ = audit.LogEvent(r.Context(), "auth.renew.rejected", nil)
			respondUnauthorized(w, r)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.renew", nil)
	writeJSON(w, http.StatusOK, renewResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
