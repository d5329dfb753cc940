package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"twtr.dev/backend/internal/audit"
	"twtr.dev/backend/internal/collections"
	"twtr.dev/backend/internal/store"
)

type enqueueRequest struct {
	Key    string          `json:"key"`
	Path   string          `json:"path"`
	Record json.RawMessage `json:"record"`
}

type setLocationRequest struct {
	// user_id arrives as a string (the geo page posts names) or a bare
	// number; both are accepted.
	UserID    json.RawMessage `json:"user_id"`
	Latitude  *float64        `json:"latitude"`
	Longitude *float64        `json:"longitude"`
	Heading   *float64        `json:"heading"`
	Speed     *float64        `json:"speed"`
}

func (a *API) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req enqueueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var record any
	if len(req.Record) > 0 {
		record = req.Record
	}
	status, err := a.data.Enqueue(r.Context(), req.Key, req.Path, record)
	if err != nil {
		if errors.Is(err, collections.ErrMissingData) {
			writeError(w, r, http.StatusBadRequest, "Missing data.")
			return
		}
		writeError(w, r, http.StatusInternalServerError, string(collections.StatusFailed))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": string(status)})
}

func (a *API) handleEnqueueProbe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	key, status, err := a.data.EnqueueProbe(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, string(collections.StatusFailed))
		return
	}
	if status == collections.StatusDropped {
		// Nothing was written, so there is no key to report.
		writeJSON(w, http.StatusOK, map[string]any{"status": string(status)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": string(status), "key": key})
}

func (a *API) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req setLocationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := scalarToString(req.UserID)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Missing data.")
		return
	}

	loc := collections.Location{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Heading:   req.Heading,
		Speed:     req.Speed,
	}
	status, err := a.data.SetLocation(r.Context(), userID, loc)
	if err != nil {
		if errors.Is(err, collections.ErrMissingData) {
			writeError(w, r, http.StatusBadRequest, "Missing data.")
			return
		}
		writeError(w, r, http.StatusInternalServerError,
			fmt.Sprintf("Location for user %s not enqueued.", userID))
		return
	}
	if status == collections.StatusDropped {
		writeJSON(w, http.StatusOK, map[string]any{"status": string(collections.StatusDropped)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": fmt.Sprintf("Location for user %s enqueued.", userID),
	})
}

func (a *API) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	userID := strings.TrimPrefix(r.URL.Path, "/get-location/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	doc, err := a.data.GetLocation(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, r, http.StatusNotFound,
				fmt.Sprintf("No location data for user %s.", userID))
			return
		}
		writeError(w, r, http.StatusInternalServerError,
			fmt.Sprintf("Error retrieving data for user %s.", userID))
		return
	}
	writeRawJSON(w, http.StatusOK, doc)
}

func (a *API) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	doc, err := a.data.CurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "no user data")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeRawJSON(w, http.StatusOK, doc)
}

func (a *API) handleListCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	all, err := a.data.ListCache(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Queue inaccessible.")
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (a *API) handlePurgeCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	snapshot, err := a.data.PurgeCache(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "Queue inaccessible.")
		return
	}
	_ = audit.LogEvent(r.Context(), "cache.purge", map[string]any{"keys": len(snapshot)})
	writeJSON(w, http.StatusOK, snapshot)
}

// writeRawJSON sends an already-encoded document verbatim.
func writeRawJSON(w http.ResponseWriter, code int, doc json.RawMessage) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(doc)
}

// scalarToString accepts a JSON string or number and renders it as the
// flat key segment the store uses.
func scalarToString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("value is required")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", errors.New("value is empty")
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
		return n.String(), nil
	}
	return "", errors.New("expected string or number")
}
