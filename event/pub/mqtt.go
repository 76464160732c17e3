package pub

import (
	"context"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

const mqttQuiesce = 250 // ms

type mqttSink struct {
	client mqtt.Client
}

// NewMQTT connects to broker, e.g. tcp://localhost:1883.
func NewMQTT(broker, clientID string) (Sink, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, errors.Wrapf(token.Error(), "func Connect: broker [%s]", broker)
	}
	return &mqttSink{client: client}, nil
}

// MQTTTopic maps a dotted topic to MQTT levels.
func MQTTTopic(topic string) string {
	return strings.ReplaceAll(topic, ".", "/")
}

func (s *mqttSink) Send(ctx context.Context, topic string, msg []byte) error {
	token := s.client.Publish(MQTTTopic(topic), 0, true, msg)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *mqttSink) Close() error {
	s.client.Disconnect(mqttQuiesce)
	return nil
}
