package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"casapio.org/internal/auth"
	"casapio.org/internal/meals"
	"casapio.org/internal/obs"
	"casapio.org/internal/residence"
)

// ReadyProbe reports whether the service can take traffic.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string

	tokens    *auth.TokenService
	residence *residence.Service
	meals     *meals.Service
}

func New(rp ReadyProbe, version string, tokens *auth.TokenService, res *residence.Service, ml *meals.Service) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		version:    version,
		tokens:     tokens,
		residence:  res,
		meals:      ml,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// authentication
	a.mux.HandleFunc("/v1/auth/login", a.handleLogin)
	a.mux.HandleFunc("/v1/auth/password", a.handleChangePassword)

	// resident surface
	a.mux.HandleFunc("/v1/profile", a.handleProfile)
	a.mux.HandleFunc("/v1/meals/week", a.handleMealWeek)
	a.mux.HandleFunc("/v1/requests", a.handleRequests)

	// admin surface
	a.mux.Handle("/v1/admin/", RequireRole(auth.RoleAdmin)(http.HandlerFunc(a.handleAdmin)))

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the full middleware chain around the mux.
func (a *API) Handler() http.Handler {
	h := a.withAuth(a.mux)
	h = MaxBodyBytes(h, 1<<20)
	h = RateLimit(h, 20, 10)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "casapio-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
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

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "casapio-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
