package pub

import (
	"context"

	"github.com/nats-io/go-nats"
	"github.com/pkg/errors"
)

type natsSink struct {
	conn *nats.Conn
}

// NewNATS connects to the NATS server at url.
func NewNATS(url string) (Sink, error) {
	conn, err := nats.Connect(url, nats.Name("sensorms"))
	if err != nil {
		return nil, errors.Wrapf(err, "func Connect: url [%s]", url)
	}
	return &natsSink{conn: conn}, nil
}

func (s *natsSink) Send(_ context.Context, topic string, msg []byte) error {
	return s.conn.Publish(topic, msg)
}

func (s *natsSink) Close() error {
	s.conn.Close()
	return nil
}
