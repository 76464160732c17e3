package svc

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Reading is a single measurement of the station's sensor.
type Reading struct {
	Temp float64 `json:"temp"`
	Hyg  float64 `json:"hyg"`
}

// Encode serializes r into the indented frame pushed to websocket clients.
func Encode(r Reading) ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "func MarshalIndent")
	}
	return b, nil
}

// Decode parses a frame produced by Encode.
func Decode(b []byte) (Reading, error) {
	var r Reading
	if err := json.Unmarshal(b, &r); err != nil {
		return Reading{}, errors.Wrap(err, "func Unmarshal")
	}
	return r, nil
}
