package api

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	fixedTemperature = "23"
	fixedHumidity    = "58"
)

type health struct {
	Status  string `json:"status"`
	State   string `json:"state"`
	Clients int    `json:"clients"`
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	a.resp(w, health{
		Status:  "ok",
		State:   string(a.station.State()),
		Clients: a.station.Clients(),
	})
}

// sensorsHandler answers with fixed values unless live readings are enabled.
func (a *api) sensorsHandler(w http.ResponseWriter, r *http.Request) {
	temp, hyg := fixedTemperature, fixedHumidity
	if a.liveReading {
		rd := a.station.Reading()
		temp = strconv.FormatFloat(rd.Temp, 'f', -1, 64)
		hyg = strconv.FormatFloat(rd.Hyg, 'f', -1, 64)
	}
	body := fmt.Sprintf("{\n  \"temperature\": %q,\n  \"humidity\": %q\n}\n", temp, hyg)
	a.write(w, http.StatusOK, "application/json", []byte(body))
}
