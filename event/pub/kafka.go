package pub

import (
	"context"

	"github.com/segmentio/kafka-go"
)

type kafkaSink struct {
	w *kafka.Writer
}

// NewKafka returns a sink writing to topic on brokers. The writer dials on
// first use.
func NewKafka(brokers []string, topic string) Sink {
	return &kafkaSink{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// Send ignores topic; the writer is bound to one.
func (s *kafkaSink) Send(ctx context.Context, _ string, msg []byte) error {
	return s.w.WriteMessages(ctx, kafka.Message{Value: msg})
}

func (s *kafkaSink) Close() error {
	return s.w.Close()
}
