package svc

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIsIndented(t *testing.T) {
	b, err := Encode(Reading{Temp: 21.4, Hyg: 56})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"temp\": 21.4,\n  \"hyg\": 56\n}", string(b))
}

func TestEncodeHasExactlyTwoKeys(t *testing.T) {
	b, err := Encode(Reading{Temp: -3.25, Hyg: 99.5})
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Len(t, m, 2)
	assert.Equal(t, -3.25, m["temp"])
	assert.Equal(t, 99.5, m["hyg"])
}

func TestEncodeDecodeIdentity(t *testing.T) {
	for _, r := range []Reading{
		{},
		{Temp: StubTemp, Hyg: StubHyg},
		{Temp: -40, Hyg: 0.001},
		{Temp: 85.125, Hyg: 100},
		{Temp: math.SmallestNonzeroFloat64, Hyg: math.MaxFloat64},
	} {
		b, err := Encode(r)
		require.NoError(t, err)
		got, err := Decode(b)
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}

func TestEncodeRejectsNaN(t *testing.T) {
	_, err := Encode(Reading{Temp: math.NaN()})
	assert.Error(t, err)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestStub(t *testing.T) {
	var s Sensor = Stub{}
	require.NoError(t, s.Init())
	r, err := s.Measure()
	require.NoError(t, err)
	assert.Equal(t, Reading{Temp: 21.4, Hyg: 56}, r)
	assert.NoError(t, s.Shutdown())
}
