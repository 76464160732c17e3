package api

import (
	"encoding/json"
	"net/http"
)

const notFoundBody = "404 - Not Found"

func (a *api) resp(w http.ResponseWriter, data interface{}) {
	b, err := json.Marshal(data)
	if err != nil {
		a.log.Errorf("func Marshal: %s", err)
		a.respError(w, newServiceError())
		return
	}
	a.write(w, http.StatusOK, "application/json", b)
}

func (a *api) respError(w http.ResponseWriter, e apiError) {
	b, err := json.Marshal(e)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.metric.ErrorCounter(e.Code)
	a.write(w, http.StatusInternalServerError, "application/json", b)
}

func (a *api) respNotFound(w http.ResponseWriter) {
	a.write(w, http.StatusNotFound, "text/plain", []byte(notFoundBody))
}

func (a *api) write(w http.ResponseWriter, code int, contentType string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	if _, err := w.Write(b); err != nil {
		a.log.Errorf("func Write: %s", err)
	}
}
