package svc

// Sensor is a contract for a device that produces readings.
type Sensor interface {
	Init() error
	Measure() (Reading, error)
	Shutdown() error
}

// Values returned by the stub sensor.
const (
	StubTemp = 21.4
	StubHyg  = 56
)

// Stub is a sensor without hardware. It always returns the same reading.
type Stub struct{}

func (Stub) Init() error { return nil }

func (Stub) Measure() (Reading, error) {
	return Reading{Temp: StubTemp, Hyg: StubHyg}, nil
}

func (Stub) Shutdown() error { return nil }
