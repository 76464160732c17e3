// Package api serves the pull channel, the push channel and the bundled web UI.
package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/kostiamol/sensorms/log"
	"github.com/kostiamol/sensorms/metric"
	"github.com/kostiamol/sensorms/svc"
	"github.com/rs/cors"
)

type (
	// Station is a contract for the station the api exposes.
	Station interface {
		Reading() svc.Reading
		State() svc.State
		Clients() int
		Stream() http.Handler
	}

	// Cfg is used to initialize an instance of api.
	Cfg struct {
		Log         log.Logger
		Metric      *metric.Metric
		Station     Station
		PortHTTP    uint32
		StaticDir   string
		LiveReading bool
	}

	api struct {
		log         log.Logger
		metric      *metric.Metric
		station     Station
		portHTTP    uint32
		staticDir   string
		liveReading bool
		router      *mux.Router
	}
)

// New creates and initializes a new instance of api.
func New(c *Cfg) *api { // nolint
	a := &api{
		log:         c.Log.With("component", "api"),
		metric:      c.Metric,
		station:     c.Station,
		portHTTP:    c.PortHTTP,
		staticDir:   c.StaticDir,
		liveReading: c.LiveReading,
		router:      mux.NewRouter(),
	}
	a.registerRoutes()
	return a
}

// Server returns the HTTP server bound to the configured port. It is not
// started.
func (a *api) Server() *http.Server {
	a.log.With("event", log.EventComponentStarted).
		Infof("http port [%d] static dir [%s]", a.portHTTP, a.staticDir)

	return &http.Server{
		Handler: a.Handler(),
		Addr:    fmt.Sprintf(":%d", a.portHTTP),
	}
}

// Handler returns the router wrapped with panic recovery and CORS.
func (a *api) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(&panicLogger{log: a.log, metric: a.metric}),
		handlers.PrintRecoveryStack(false),
	)
	return recovery(c.Handler(a.router))
}

func (a *api) registerRoutes() {
	middleware := []func(next http.HandlerFunc, name string) http.HandlerFunc{
		a.requestLogger,
		a.metric.TimeTracker,
	}

	a.registerRoute(http.MethodGet, "/health", a.health)
	a.registerRoute(http.MethodGet, "/metrics", a.metric.HandlerHTTP())
	a.registerRoute(http.MethodGet, "/api/sensors", a.sensorsHandler, middleware...)

	a.router.Handle("/ws", a.station.Stream())
	a.router.PathPrefix("/").HandlerFunc(a.requestLogger(a.staticHandler, "static"))
}
