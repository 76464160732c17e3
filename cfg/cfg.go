// Package cfg loads the station configuration from environment variables.
package cfg

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Build-time defaults for the network credentials. Override with
// -ldflags "-X github.com/kostiamol/sensorms/cfg.DefaultSSID=...".
var (
	DefaultSSID     = "YOUR_SSID"
	DefaultPassword = "YOUR_WLAN_PASSWORD"
)

// Config holds the whole station configuration.
type Config struct {
	Service   Service
	Network   Network
	Sensor    Sensor
	Publisher Publisher
}

// NewConfig reads the configuration from the environment and validates it.
func NewConfig() (*Config, error) {
	p := &parser{}

	c := &Config{
		Service: Service{
			AppID:              p.strEnv("APP_ID", "sensorms"),
			LogLevel:           p.strEnv("LOG_LEVEL", "info"),
			PortHTTP:           p.uintEnv("HTTP_PORT", 80),
			StaticDir:          p.strEnv("STATIC_DIR", "./web"),
			MeasureInterval:    p.durationEnv("MEASURE_INTERVAL", 5*time.Second),
			PollPeriod:         p.durationEnv("POLL_PERIOD", 10*time.Millisecond),
			LiveReadingAPI:     p.boolEnv("API_LIVE_READING", false),
			TerminationTimeout: p.durationEnv("TERMINATION_TIMEOUT", 3*time.Second),
		},
		Network: Network{
			SSID:      p.strEnv("NETWORK_SSID", DefaultSSID),
			Password:  p.strEnv("NETWORK_PASSWORD", DefaultPassword),
			Iface:     p.strEnv("NETWORK_IFACE", ""),
			JoinDelay: p.durationEnv("NETWORK_JOIN_DELAY", 500*time.Millisecond),
		},
		Sensor: Sensor{
			Driver:  p.strEnv("SENSOR_DRIVER", SensorDriverStub),
			I2CBus:  p.strEnv("SENSOR_I2C_BUS", ""),
			I2CAddr: uint16(p.uintEnv("SENSOR_I2C_ADDR", 0x76)),
		},
		Publisher: Publisher{
			NATSURL:      p.strEnv("PUB_NATS_URL", ""),
			MQTTBroker:   p.strEnv("PUB_MQTT_BROKER", ""),
			RedisAddr:    p.strEnv("PUB_REDIS_ADDR", ""),
			KafkaBrokers: p.listEnv("PUB_KAFKA_BROKERS"),
			Topic:        p.strEnv("PUB_TOPIC", "sensorms.readings"),
		},
	}
	if p.err != nil {
		return nil, p.err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if err := c.Service.validate(); err != nil {
		return errors.Wrap(err, "service")
	}
	if err := c.Network.validate(); err != nil {
		return errors.Wrap(err, "network")
	}
	if err := c.Sensor.validate(); err != nil {
		return errors.Wrap(err, "sensor")
	}
	if err := c.Publisher.validate(); err != nil {
		return errors.Wrap(err, "publisher")
	}
	return nil
}

// parser reads typed env vars and keeps the first parse error.
type parser struct {
	err error
}

func (p *parser) strEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func (p *parser) uintEnv(key string, def uint32) uint32 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return uint32(n)
}

func (p *parser) boolEnv(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

func (p *parser) durationEnv(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

func (p *parser) listEnv(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = errors.Wrapf(err, "env var %s=%q", key, value)
	}
}
