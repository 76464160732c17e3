// Package pub mirrors station readings to message brokers.
package pub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/kostiamol/sensorms/cfg"
	"github.com/kostiamol/sensorms/log"
	"github.com/pkg/errors"
	"github.com/satori/go.uuid"
	"go.uber.org/multierr"
)

// EventReadingMeasured is the type of every published event.
const EventReadingMeasured = "reading_measured"

type (
	// Sink delivers an encoded event to one broker.
	Sink interface {
		Send(ctx context.Context, topic string, msg []byte) error
		Close() error
	}

	// Event is the envelope every reading is wrapped in.
	Event struct {
		ID     string          `json:"id"`
		Type   string          `json:"type"`
		Source string          `json:"source"`
		Time   time.Time       `json:"time"`
		Data   json.RawMessage `json:"data"`
	}

	// Cfg is used to initialize an instance of publisher.
	Cfg struct {
		Publisher cfg.Publisher
		AppID     string
		Log       log.Logger
	}

	namedSink struct {
		name string
		Sink
	}

	publisher struct {
		topic  string
		source string
		log    log.Logger
		now    func() time.Time

		mu     sync.RWMutex
		sinks  []namedSink
		closed bool
	}
)

// New connects to every broker configured in c.Publisher.
func New(c *Cfg) (*publisher, error) { // nolint
	p := newPublisher(c.Publisher.Topic, c.AppID, c.Log)

	if c.Publisher.NATSURL != "" {
		s, err := NewNATS(c.Publisher.NATSURL)
		if err != nil {
			return nil, p.closeAfter(err, "nats")
		}
		p.add("nats", s)
	}
	if c.Publisher.MQTTBroker != "" {
		s, err := NewMQTT(c.Publisher.MQTTBroker, c.AppID)
		if err != nil {
			return nil, p.closeAfter(err, "mqtt")
		}
		p.add("mqtt", s)
	}
	if c.Publisher.RedisAddr != "" {
		p.add("redis", NewRedis(c.Publisher.RedisAddr))
	}
	if len(c.Publisher.KafkaBrokers) > 0 {
		p.add("kafka", NewKafka(c.Publisher.KafkaBrokers, c.Publisher.Topic))
	}

	return p, nil
}

func newPublisher(topic, source string, l log.Logger) *publisher {
	return &publisher{
		topic:  topic,
		source: source,
		log:    l.With("component", "publisher"),
		now:    time.Now,
	}
}

func (p *publisher) add(name string, s Sink) {
	p.sinks = append(p.sinks, namedSink{name: name, Sink: s})
	p.log.With("event", log.EventComponentStarted).Infof("sink [%s] topic [%s]", name, p.topic)
}

func (p *publisher) closeAfter(err error, name string) error {
	return multierr.Append(errors.Wrapf(err, "sink [%s]", name), p.Close())
}

// Publish wraps frame into an Event and sends it to every sink. A failing sink
// does not stop the others. After Close it is a no-op.
func (p *publisher) Publish(ctx context.Context, frame []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil
	}

	e := Event{
		ID:     uuid.NewV4().String(),
		Type:   EventReadingMeasured,
		Source: p.source,
		Time:   p.now().UTC().Truncate(time.Second),
		Data:   json.RawMessage(frame),
	}
	b, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "func Marshal")
	}

	var errs error
	for _, s := range p.sinks {
		if err := s.Send(ctx, p.topic, b); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "sink [%s]", s.name))
		}
	}
	return errs
}

// Close waits for running publishes and releases every sink.
func (p *publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	var errs error
	for _, s := range p.sinks {
		if err := s.Close(); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "sink [%s]", s.name))
		}
	}
	p.sinks = nil
	return errs
}
