package svc

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Ctrl contains StopChan that allows to terminate all the components that listen to the channel.
type Ctrl struct {
	StopChan chan struct{}
	once     *sync.Once
}

// NewCtrl returns a Ctrl with an open StopChan.
func NewCtrl() Ctrl {
	return Ctrl{StopChan: make(chan struct{}), once: new(sync.Once)}
}

// Context returns a context that is canceled once StopChan is closed.
func (c Ctrl) Context() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-c.StopChan:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// Wait blocks until an interrupt or termination signal arrives or StopChan is closed,
// then gives the components t to shut down gracefully.
func (c Ctrl) Wait(t time.Duration) {
	inter := make(chan os.Signal, 1)
	signal.Notify(inter, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(inter)

	select {
	case <-inter:
		c.Terminate()
	case <-c.StopChan:
	}

	<-time.NewTimer(t).C
}

// Terminate closes StopChan to signal all the components to shut down.
func (c Ctrl) Terminate() {
	if c.once != nil {
		c.once.Do(func() { close(c.StopChan) })
		return
	}
	select {
	case <-c.StopChan:
	default:
		close(c.StopChan)
	}
}
