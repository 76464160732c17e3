package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kostiamol/sensorms/log"
	"github.com/kostiamol/sensorms/metric"
)

func (a *api) registerRoute(method, path string, handler http.HandlerFunc,
	middlewares ...func(next http.HandlerFunc, name string) http.HandlerFunc) {

	for _, mw := range middlewares {
		handler = mw(handler, path)
	}
	a.router.Handle(path, handler).Methods(method)
}

func (a *api) requestLogger(next http.HandlerFunc, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		a.log.With("method", r.Method, "uri", r.RequestURI, "name", name, "duration", time.Since(start)).Info()
	}
}

// panicLogger feeds handlers.RecoveryHandler.
type panicLogger struct {
	log    log.Logger
	metric *metric.Metric
}

func (p *panicLogger) Println(v ...interface{}) {
	p.log.With("event", log.EventPanic).Error(fmt.Sprint(v...))
	if p.metric != nil {
		p.metric.ErrorCounter(log.EventPanic)
	}
}
