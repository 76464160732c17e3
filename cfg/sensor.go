package cfg

import "fmt"

// Supported sensor drivers.
const (
	SensorDriverStub   = "stub"
	SensorDriverBME280 = "bme280"
)

// Sensor selects the driver that produces readings.
type Sensor struct {
	Driver  string
	I2CBus  string // empty picks the first bus
	I2CAddr uint16
}

func (s Sensor) validate() error {
	switch s.Driver {
	case SensorDriverStub:
		return nil
	case SensorDriverBME280:
		if s.I2CAddr != 0x76 && s.I2CAddr != 0x77 {
			return fmt.Errorf("bme280 i2c addr must be 0x76 or 0x77, got %#x", s.I2CAddr)
		}
		return nil
	default:
		return fmt.Errorf("unknown sensor driver %q", s.Driver)
	}
}
