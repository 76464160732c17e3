package metric

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasured(t *testing.T) {
	m := New("sensor-ms")
	m.Measured(21.4, 56)
	m.Measured(22, 50)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.measurements))
	assert.Equal(t, float64(22), testutil.ToFloat64(m.temperature))
	assert.Equal(t, float64(50), testutil.ToFloat64(m.humidity))
}

func TestTwoInstancesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		New("a")
		New("a")
	})
}

func TestHandlerHTTP(t *testing.T) {
	m := New("sensorms")
	m.StreamClients(3)
	m.ErrorCounter("panic")

	h := m.TimeTracker(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "/noop")
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/noop", nil))

	rec := httptest.NewRecorder()
	m.HandlerHTTP()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "stream_clients 3")
	assert.Contains(t, body, `error_counter{error="panic"} 1`)
	assert.Contains(t, body, `service_timing_count{route="/noop"} 1`)
}
