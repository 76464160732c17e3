package cfg

import (
	"fmt"
)

// Publisher holds the addresses of the brokers each reading is mirrored to.
// A broker is disabled when its address is empty.
type Publisher struct {
	NATSURL      string
	MQTTBroker   string
	RedisAddr    string
	KafkaBrokers []string
	Topic        string
}

// Enabled reports whether at least one broker is configured.
func (p Publisher) Enabled() bool {
	return p.NATSURL != "" || p.MQTTBroker != "" || p.RedisAddr != "" || len(p.KafkaBrokers) > 0
}

func (p Publisher) validate() error {
	if p.Enabled() && p.Topic == "" {
		return fmt.Errorf("publisher topic env var is missing")
	}
	return nil
}
