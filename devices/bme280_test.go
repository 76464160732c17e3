package devices

import (
	"testing"

	"github.com/kostiamol/sensorms/svc"
	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/physic"
)

func TestReadingConversion(t *testing.T) {
	e := physic.Env{
		Temperature: physic.ZeroCelsius + 21500*physic.MilliKelvin,
		Humidity:    56 * physic.PercentRH,
	}
	r := reading(e)
	assert.InDelta(t, 21.5, r.Temp, 1e-6)
	assert.InDelta(t, 56, r.Hyg, 1e-6)
}

func TestMeasureBeforeInit(t *testing.T) {
	b := NewBME280("", 0x76)
	_, err := b.Measure()
	assert.Equal(t, ErrNotInitialized, err)
	assert.NoError(t, b.Shutdown())
}

func TestBME280IsSensor(t *testing.T) {
	var _ svc.Sensor = NewBME280("", 0x77)
}
