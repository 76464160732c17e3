// Package devices holds the hardware sensor drivers of the station.
package devices

import (
	"sync"

	"github.com/kostiamol/sensorms/svc"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// ErrNotInitialized is returned by Measure before a successful Init.
var ErrNotInitialized = errors.New("bme280: not initialized")

// BME280 reads temperature and humidity from a Bosch BME280 on an I²C bus.
type BME280 struct {
	bus  string
	addr uint16

	mu  sync.Mutex
	bc  i2c.BusCloser
	dev *bmxx80.Dev
}

// NewBME280 returns a driver for the chip at addr on bus. An empty bus name
// selects the first bus found.
func NewBME280(bus string, addr uint16) *BME280 {
	return &BME280{bus: bus, addr: addr}
}

func (b *BME280) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "func host.Init")
	}
	bc, err := i2creg.Open(b.bus)
	if err != nil {
		return errors.Wrapf(err, "func i2creg.Open: bus [%s]", b.bus)
	}
	dev, err := bmxx80.NewI2C(bc, b.addr, &bmxx80.DefaultOpts)
	if err != nil {
		_ = bc.Close()
		return errors.Wrapf(err, "func bmxx80.NewI2C: addr [%#x]", b.addr)
	}
	b.bc, b.dev = bc, dev
	return nil
}

func (b *BME280) Measure() (svc.Reading, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev == nil {
		return svc.Reading{}, ErrNotInitialized
	}
	var e physic.Env
	if err := b.dev.Sense(&e); err != nil {
		return svc.Reading{}, errors.Wrap(err, "func Sense")
	}
	return reading(e), nil
}

func (b *BME280) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dev == nil {
		return nil
	}
	err := b.dev.Halt()
	if cerr := b.bc.Close(); err == nil {
		err = cerr
	}
	b.bc, b.dev = nil, nil
	return err
}

func reading(e physic.Env) svc.Reading {
	return svc.Reading{
		Temp: e.Temperature.Celsius(),
		Hyg:  float64(e.Humidity) / float64(physic.PercentRH),
	}
}
