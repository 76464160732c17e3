// Package link joins the station to its network before anything is served.
package link

import (
	"context"
	"net"
	"time"

	"github.com/kostiamol/sensorms/log"
	"github.com/pkg/errors"
)

// Linker is a network interface that can join a network by name and credential.
type Linker interface {
	// Begin starts joining. It does not wait for the link to come up.
	Begin(ssid, password string) error
	// Connected reports whether the link is up.
	Connected() bool
	// LocalIP returns the address obtained on the link, or nil.
	LocalIP() net.IP
}

// Join starts joining ssid and polls l every delay until the link is up.
// There is no timeout and no retry limit: it returns only on success or when
// ctx is done.
func Join(ctx context.Context, l Linker, ssid, password string, delay time.Duration, lg log.Logger) error {
	lg = lg.With("component", "link")
	lg.With("event", log.EventLinkJoining).Infof("connecting to [%s]", ssid)

	if err := l.Begin(ssid, password); err != nil {
		return errors.Wrapf(err, "func Begin: ssid [%s]", ssid)
	}

	t := time.NewTicker(delay)
	defer t.Stop()

	attempt := 0
	for !l.Connected() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			attempt++
			lg.Infof("waiting for link, attempt [%d]", attempt)
		}
	}

	lg.With("event", log.EventLinkJoined).Infof("connected to [%s], ip [%v]", ssid, l.LocalIP())
	return nil
}
