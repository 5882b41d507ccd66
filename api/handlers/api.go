package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/api"
	"github.com/georeconexion/campo-api/config"
	"github.com/georeconexion/campo-api/gateway"
	"github.com/georeconexion/campo-api/geolocate"
	"github.com/georeconexion/campo-api/models"
	"github.com/georeconexion/campo-api/store"
)

// App stores the router and session state, so it can be reused
type App struct {
	Router  *mux.Router
	Config  config.Config
	Store   *store.Store
	Gateway *gateway.Gateway
	Hub     *LiveHub
	Locator geolocate.Locator
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareStore{Store: a.Store}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	fallback := geolocate.Fallback{
		Inner:   a.Locator,
		Default: a.Config.DefaultCenter(),
		Wait:    a.Config.LocateWait,
	}

	s := Survey{Store: a.Store, Locator: fallback}
	act := Activity{Store: a.Store}
	p := Personnel{Store: a.Store}
	u := User{Store: a.Store, Gateway: a.Gateway, JWTSecret: a.Config.JWTSecret}
	o := Overlay{Store: a.Store, Config: a.Config}
	metrics := Metrics{Store: a.Store}
	photo := PhotoHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/login", http.HandlerFunc(u.LoginHandler)).Methods("POST")

	apiCreate.Handle("/encuestas", api.Middleware(http.HandlerFunc(s.CreateSurveyPointHandler))).Methods("POST")
	apiCreate.Handle("/encuestas", api.Middleware(http.HandlerFunc(s.SurveyPointsHandler))).Methods("GET")

	apiCreate.Handle("/actividades", api.Middleware(http.HandlerFunc(act.CreateActivityHandler))).Methods("POST")
	apiCreate.Handle("/actividades", api.Middleware(http.HandlerFunc(act.ActivitiesHandler))).Methods("GET")
	apiCreate.Handle("/actividades/{activity_id}/asistencia", api.Middleware(http.HandlerFunc(act.UpdateAttendanceHandler))).Methods("PUT")

	apiCreate.Handle("/personal", api.Middleware(http.HandlerFunc(p.UpsertPersonnelHandler))).Methods("POST")
	apiCreate.Handle("/personal", api.Middleware(http.HandlerFunc(p.PersonnelHandler))).Methods("GET")

	apiCreate.Handle("/usuarios", u.RequireAdmin(http.HandlerFunc(u.UpsertUserHandler))).Methods("POST")
	apiCreate.Handle("/usuarios", api.Middleware(http.HandlerFunc(u.UsersHandler))).Methods("GET")

	apiCreate.Handle("/overlay", api.Middleware(http.HandlerFunc(o.OverlayHandler))).Methods("GET")
	apiCreate.Handle("/paths", api.Middleware(http.HandlerFunc(o.PathsHandler))).Methods("GET")
	apiCreate.Handle("/metrics/summary", api.Middleware(http.HandlerFunc(metrics.SummaryHandler))).Methods("GET")

	apiCreate.Handle("/photos", api.Middleware(http.HandlerFunc(photo.UploadHandler))).Methods("POST")

	r.HandleFunc("/ws/live", a.Hub.HandleLiveWebSocket)

	return r
}

// Initialize is invoked by main to wire the gateway, session store and router
func (a *App) Initialize() error {

	if a.Config.JWTSecret == "" {
		// session tokens cannot be minted without it, so kill the pod early
		return fmt.Errorf("jwt secret is not set")
	}

	if a.Gateway == nil {
		a.Gateway = gateway.New(gateway.Options{
			BaseURL:    a.Config.UpstreamURL,
			Timeout:    a.Config.Timeout,
			MaxRetries: a.Config.MaxRetries,
		})
	}
	if a.Store == nil {
		a.Store = store.New(a.Gateway)
	}
	if a.Locator == nil {
		a.Locator = geolocate.Unavailable{}
	}
	a.Hub = NewLiveHub()

	// hydrate the session from the master backend, best-effort
	if a.Gateway.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.Timeout)
		defer cancel()
		if err := a.Store.RefreshUsers(ctx); err != nil {
			zap.S().Warnw("failed to hydrate users from upstream", "error", err)
		}
		if points, err := a.Gateway.FetchSurveyPoints(ctx); err != nil {
			zap.S().Warnw("failed to hydrate survey points from upstream", "error", err)
		} else {
			a.Store.SeedSurveyPoints(points)
		}
	} else {
		zap.S().Warn("no upstream configured, running local-only")
	}

	a.Store.OnChange(a.broadcastOverlay)

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func (a *App) broadcastOverlay() {
	o := Overlay{Store: a.Store, Config: a.Config}
	overlay, err := o.build(true, nil)
	if err != nil {
		zap.S().Errorw("failed to build live overlay", "error", err)
		return
	}
	a.Hub.BroadcastOverlay(overlay)
}

// Shutdown drains in-flight sync attempts before the process exits
func (a *App) Shutdown(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		a.Store.WaitSync()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		zap.S().Warn("shutdown deadline hit with sync attempts still in flight")
	case <-time.After(30 * time.Second):
		zap.S().Warn("gave up waiting for in-flight sync attempts")
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
