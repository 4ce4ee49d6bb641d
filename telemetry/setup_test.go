package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "disabled", cfg: Config{ServiceName: "inventory", Endpoint: "http://localhost:4318"}},
		{name: "no endpoint", cfg: Config{ServiceName: "inventory", Enabled: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shutdown, err := Setup(context.Background(), tc.cfg)
			require.NoError(t, err)
			require.NotNil(t, shutdown)
			assert.NoError(t, shutdown(context.Background()))
		})
	}
}

func TestSetup_InvalidEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{ServiceName: "inventory", Endpoint: "localhost", Enabled: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute URL")
	assert.NoError(t, shutdown(context.Background()))
}

type collector struct {
	mutex sync.Mutex
	paths []string
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)
	c.mutex.Lock()
	c.paths = append(c.paths, r.URL.Path)
	c.mutex.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *collector) received() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([]string(nil), c.paths...)
}

func TestSetup_InstallsTracerAndMeterProviders(t *testing.T) {
	sink := &collector{}
	server := httptest.NewServer(sink)
	defer server.Close()

	shutdown, err := Setup(context.Background(), Config{ServiceName: "inventory", Endpoint: server.URL, Enabled: true})
	require.NoError(t, err)

	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	assert.IsType(t, &sdkmetric.MeterProvider{}, otel.GetMeterProvider())

	_, span := otel.Tracer("test").Start(context.Background(), "work")
	span.End()
	counter, err := otel.Meter("test").Int64Counter(MetricDispatchCount)
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, sink.received(), "/v1/traces")
	assert.Contains(t, sink.received(), "/v1/metrics")
}
