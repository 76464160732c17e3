// Package svc provides the station control loop and the services it drives.
package svc

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/kostiamol/sensorms/log"
	"github.com/kostiamol/sensorms/metric"
	"github.com/pkg/errors"
)

// State is a stage of the station life cycle.
type State string

// Station states, in the order they are entered.
const (
	StateInit       State = "init"
	StateConnecting State = "connecting"
	StateServing    State = "serving"
)

const publishTimeout = 5 * time.Second

type (
	// Publisher is a contract for mirroring broadcast frames to a broker.
	Publisher interface {
		Publish(ctx context.Context, frame []byte) error
		Close() error
	}

	// Server is the HTTP server the station starts once it is connected.
	Server interface {
		ListenAndServe() error
	}

	// StationCfg is used to initialize an instance of Station.
	StationCfg struct {
		Log        log.Logger
		Metric     *metric.Metric
		Sensor     Sensor
		Ticker     *Ticker
		PollPeriod time.Duration
		// Join blocks until the network link is up or ctx is done.
		Join func(ctx context.Context) error
		// Publisher is optional.
		Publisher Publisher
	}

	// Station owns the current reading and runs the measure/broadcast loop.
	Station struct {
		log        log.Logger
		metric     *metric.Metric
		sensor     Sensor
		ticker     *Ticker
		pollPeriod time.Duration
		join       func(ctx context.Context) error
		publisher  Publisher
		stream     *streamService
		publishing sync.WaitGroup

		mu      sync.RWMutex
		reading Reading
		state   State
	}
)

// NewStation creates a station in the init state with the power-on reading.
func NewStation(c *StationCfg) *Station {
	s := &Station{
		log:        c.Log.With("component", "station"),
		metric:     c.Metric,
		sensor:     c.Sensor,
		ticker:     c.Ticker,
		pollPeriod: c.PollPeriod,
		join:       c.Join,
		publisher:  c.Publisher,
		state:      StateInit,
	}
	if s.join == nil {
		s.join = func(context.Context) error { return nil }
	}
	s.stream = NewStreamService(&StreamServiceCfg{
		Log:       c.Log,
		Metric:    c.Metric,
		OnConnect: s.SendReading,
	})
	return s
}

// Stream returns the websocket handler of the push channel.
func (s *Station) Stream() http.Handler {
	return s.stream
}

// Clients returns the number of connected websocket clients.
func (s *Station) Clients() int {
	return s.stream.Clients()
}

// Reading returns the latest reading.
func (s *Station) Reading() Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reading
}

// State returns the current life cycle state.
func (s *Station) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Run initializes the sensor, joins the network, starts srv and then polls the
// ticker until ctx is done. It never goes back to connecting.
func (s *Station) Run(ctx context.Context, srv Server) error {
	s.log.With("event", log.EventComponentStarted).
		Infof("measure interval [%s]", s.ticker.Interval())

	if err := s.sensor.Init(); err != nil {
		return errors.Wrap(err, "func Init")
	}

	s.setState(StateConnecting)
	if err := s.join(ctx); err != nil {
		return errors.Wrap(err, "func Join")
	}

	s.setState(StateServing)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	t := time.NewTicker(s.pollPeriod)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			if err == nil || err == http.ErrServerClosed {
				return nil
			}
			return errors.Wrap(err, "func ListenAndServe")
		case <-t.C:
			s.Tick()
		}
	}
}

// Tick takes and broadcasts a new reading when the ticker fires. It reports
// whether it fired.
func (s *Station) Tick() bool {
	if !s.ticker.TimeIsUp() {
		return false
	}
	s.NewMeasurement()
	s.BroadcastReading()
	return true
}

// NewMeasurement overwrites the current reading with a fresh one from the
// sensor. On a sensor error the previous reading is kept.
func (s *Station) NewMeasurement() {
	r, err := s.sensor.Measure()
	if err != nil {
		s.log.With("event", log.EventMeasureFailed).Errorf("func Measure: %s", err)
		s.errorCounter(log.EventMeasureFailed)
		return
	}

	s.mu.Lock()
	s.reading = r
	s.mu.Unlock()

	if s.metric != nil {
		s.metric.Measured(r.Temp, r.Hyg)
	}
	s.log.With("event", log.EventMeasured).Debugf("temp [%v] hyg [%v]", r.Temp, r.Hyg)
}

// SendReading sends the current reading to one client only.
func (s *Station) SendReading(to Sender) {
	frame, err := Encode(s.Reading())
	if err != nil {
		s.log.Errorf("func Encode: %s", err)
		s.errorCounter("encode")
		return
	}
	if err := to.Send(frame); err != nil {
		s.log.Errorf("func Send: client %s: %s", to.ID(), err)
	}
}

// BroadcastReading sends the current reading to every connected client and
// mirrors it to the publisher, if any.
func (s *Station) BroadcastReading() {
	frame, err := Encode(s.Reading())
	if err != nil {
		s.log.Errorf("func Encode: %s", err)
		s.errorCounter("encode")
		return
	}

	n := s.stream.Broadcast(frame)
	s.log.Debugf("broadcast to [%d] clients", n)

	if s.publisher != nil {
		s.publishing.Add(1)
		go func() {
			defer s.publishing.Done()
			s.publish(frame)
		}()
	}
}

// Close disconnects the clients and releases the sensor and the publisher.
// In-flight publishes finish before the publisher is closed. Tick must not be
// called concurrently with Close.
func (s *Station) Close() error {
	s.stream.Close()
	s.publishing.Wait()

	var errs []error
	if err := s.sensor.Shutdown(); err != nil {
		errs = append(errs, errors.Wrap(err, "func Shutdown"))
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "func Close"))
		}
	}
	s.log.With("event", log.EventComponentShutdown).Info()
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (s *Station) publish(frame []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, frame); err != nil {
		s.log.With("event", log.EventPublishFailed).Errorf("func Publish: %s", err)
		s.errorCounter(log.EventPublishFailed)
	}
}

func (s *Station) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.log.With("event", log.EventStateChanged).Infof("state [%s]", st)
}

func (s *Station) errorCounter(label string) {
	if s.metric != nil {
		s.metric.ErrorCounter(label)
	}
}
