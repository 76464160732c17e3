package cfg

import (
	"fmt"
	"math"
	"time"
)

// MaxMeasureInterval is the longest interval the millisecond ticker can hold.
const MaxMeasureInterval = math.MaxUint32 * time.Millisecond

// Service holds basic service configuration.
type Service struct {
	AppID              string
	LogLevel           string
	PortHTTP           uint32
	StaticDir          string
	MeasureInterval    time.Duration
	PollPeriod         time.Duration
	LiveReadingAPI     bool
	TerminationTimeout time.Duration
}

func (s Service) validate() error {
	if s.AppID == "" {
		return fmt.Errorf("app id env var is missing")
	}
	if s.LogLevel == "" {
		return fmt.Errorf("log level env var is missing")
	}
	if s.PortHTTP == 0 || s.PortHTTP > 65535 {
		return fmt.Errorf("http port env var is invalid: %d", s.PortHTTP)
	}
	if s.StaticDir == "" {
		return fmt.Errorf("static dir env var is missing")
	}
	if s.MeasureInterval < time.Millisecond {
		return fmt.Errorf("measure interval must be at least 1ms, got %s", s.MeasureInterval)
	}
	if s.MeasureInterval > MaxMeasureInterval {
		return fmt.Errorf("measure interval must be at most %s, got %s", MaxMeasureInterval, s.MeasureInterval)
	}
	if s.PollPeriod <= 0 {
		return fmt.Errorf("poll period env var is missing")
	}
	if s.PollPeriod > s.MeasureInterval {
		return fmt.Errorf("poll period %s exceeds measure interval %s", s.PollPeriod, s.MeasureInterval)
	}
	if s.TerminationTimeout == 0 {
		return fmt.Errorf("termination timeout env var is missing")
	}
	return nil
}
