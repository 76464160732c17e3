package cfg

import (
	"fmt"
	"time"
)

// Network holds the credentials of the network the station joins at startup.
type Network struct {
	SSID      string
	Password  string
	Iface     string // restricts the link check to one interface, e.g. wlan0
	JoinDelay time.Duration
}

func (n Network) validate() error {
	if n.SSID == "" {
		return fmt.Errorf("network ssid env var is missing")
	}
	if n.JoinDelay <= 0 {
		return fmt.Errorf("network join delay must be positive")
	}
	return nil
}
