// Package httpapi is the transport shell: it parses and validates
// requests, calls into the auth and collections services, and maps
// their typed errors onto HTTP statuses. No business rules live here.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"twtr.dev/backend/internal/auth"
	"twtr.dev/backend/internal/collections"
	"twtr.dev/backend/internal/obs"
)

const serviceName = "twtr-backend"

// pinger is the slice of the store the readiness probe needs.
type pinger interface {
	Ping(ctx context.Context) error
}

// ReadyProbe checks that the document store answers before the service
// reports ready.
type ReadyProbe struct {
	Store pinger
}

// Check pings the store with a short deadline. A nil store (tests)
// always reports ready.
func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.Store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return rp.Store.Ping(ctx)
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	auth       *auth.Service
	data       *collections.Service
	readyProbe ReadyProbe
	version    string

	rateBurst  int
	ratePerSec int
}

// New wires the route table. The auth and data services are required;
// the probe may be zero-valued in tests.
func New(authSvc *auth.Service, dataSvc *collections.Service, rp ReadyProbe, version string) *API {
	a := &API{
		mux:        http.NewServeMux(),
		auth:       authSvc,
		data:       dataSvc,
		readyProbe: rp,
		version:    version,
		rateBurst:  20,
		ratePerSec: 10,
	}

	a.mux.HandleFunc("/", a.handleHome)
	a.mux.HandleFunc("/healthz", a.handleHealthz)
	a.mux.HandleFunc("/readyz", a.handleReadyz)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/login", a.handleLogin)
	a.mux.HandleFunc("/renew", a.handleRenew)

	a.mux.HandleFunc("/enqueue", a.handleEnqueue)
	a.mux.HandleFunc("/enqueue-get", a.handleEnqueueProbe)
	a.mux.HandleFunc("/set-location", a.handleSetLocation)
	a.mux.HandleFunc("/get-location/", a.handleGetLocation)
	a.mux.HandleFunc("/get-user1-data", a.handleCurrentUser)
	a.mux.HandleFunc("/collections-from-redis-cache", a.handleListCache)
	a.mux.HandleFunc("/purge-redis-cache", a.handlePurgeCache)

	return a
}

// Handler assembles the middleware chain around the route table.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	h = MaxBodyBytes(h, 1<<20)
	h = RateLimit(h, a.rateBurst, a.ratePerSec)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": serviceName,
		"version": a.version,
	})
}

func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

// handleHome serves a plain-text listing of the endpoint surface.
func (a *API) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(`twtr backend endpoints:

/login
/renew
/enqueue
/enqueue-get
/set-location
/get-location/<user_id>
/get-user1-data
/collections-from-redis-cache
/purge-redis-cache
`))
}
