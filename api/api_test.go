package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kostiamol/sensorms/log"
	"github.com/kostiamol/sensorms/metric"
	"github.com/kostiamol/sensorms/svc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStation struct {
	reading svc.Reading
}

func (s *fakeStation) Reading() svc.Reading { return s.reading }
func (s *fakeStation) State() svc.State     { return svc.StateServing }
func (s *fakeStation) Clients() int         { return 2 }
func (s *fakeStation) Stream() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("stream exploded")
	})
}

func staticDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>station</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("connect()"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0o755))
	return dir
}

func newTestServer(t *testing.T, st Station, live bool) *httptest.Server {
	t.Helper()
	a := New(&Cfg{
		Log:         log.NewNop(),
		Metric:      metric.New("test"),
		Station:     st,
		StaticDir:   staticDir(t),
		LiveReading: live,
	})
	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestSensorsReturnsFixedBody(t *testing.T) {
	srv := newTestServer(t, &fakeStation{reading: svc.Reading{Temp: 21.4, Hyg: 56}}, false)

	for i := 0; i < 2; i++ {
		resp, body := get(t, srv.URL+"/api/sensors")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.Equal(t, "{\n  \"temperature\": \"23\",\n  \"humidity\": \"58\"\n}\n", body)
	}
}

func TestSensorsReturnsLiveReadingWhenEnabled(t *testing.T) {
	srv := newTestServer(t, &fakeStation{reading: svc.Reading{Temp: 21.4, Hyg: 56}}, true)

	resp, body := get(t, srv.URL+"/api/sensors")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "{\n  \"temperature\": \"21.4\",\n  \"humidity\": \"56\"\n}\n", body)
}

func TestUnknownPathIsNotFound(t *testing.T) {
	srv := newTestServer(t, &fakeStation{}, false)

	for _, p := range []string{"/does-not-exist", "/empty", "/empty/", "/../../etc/passwd"} {
		resp, body := get(t, srv.URL+p)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, p)
		assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"), p)
		assert.Equal(t, "404 - Not Found", body, p)
	}
}

func TestNonGetOnSensorsFallsThroughToNotFound(t *testing.T) {
	srv := newTestServer(t, &fakeStation{}, false)

	resp, err := http.Post(srv.URL+"/api/sensors", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "404 - Not Found", string(b))
}

func TestStaticFilesAreServed(t *testing.T) {
	srv := newTestServer(t, &fakeStation{}, false)

	resp, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<h1>station</h1>", body)

	resp, body = get(t, srv.URL+"/app.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "connect()", body)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeStation{}, false)

	resp, body := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","state":"serving","clients":2}`, body)
}

func TestMetricsAreExposed(t *testing.T) {
	srv := newTestServer(t, &fakeStation{}, false)
	get(t, srv.URL+"/api/sensors")

	resp, body := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `service_timing_count{route="/api/sensors"} 1`)
}

func TestPanicIsRecovered(t *testing.T) {
	srv := newTestServer(t, &fakeStation{}, false)

	resp, _ := get(t, srv.URL+"/ws")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPushChannelThroughRouter(t *testing.T) {
	st := svc.NewStation(&svc.StationCfg{
		Log:        log.NewNop(),
		Sensor:     svc.Stub{},
		Ticker:     svc.NewTicker(svc.Millis(), time.Hour),
		PollPeriod: time.Millisecond,
	})
	srv := newTestServer(t, st, false)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"temp\": 0,\n  \"hyg\": 0\n}", string(msg))
}
