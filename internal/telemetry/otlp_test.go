package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	shutdown, err := Setup(context.Background())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

// collector records the paths OTLP exports are posted to.
type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.paths = append(c.paths, r.URL.Path)
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *collector) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func TestSetupExportsToEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint func(srv *httptest.Server) string
		path     string
	}{
		{"url", func(srv *httptest.Server) string { return srv.URL }, "/v1/traces"},
		{"url with base path", func(srv *httptest.Server) string { return srv.URL + "/otel" }, "/otel/v1/traces"},
		{"host and port", func(srv *httptest.Server) string { return strings.TrimPrefix(srv.URL, "http://") }, "/v1/traces"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &collector{}
			srv := httptest.NewServer(c)
			defer srv.Close()
			t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", tt.endpoint(srv))
			shutdown, err := Setup(context.Background())
			require.NoError(t, err)

			_, span := otel.Tracer("test").Start(context.Background(), "fetch")
			span.End()
			require.NoError(t, shutdown(context.Background()))

			assert.Equal(t, []string{tt.path}, c.received())
		})
	}
}

func TestEndpointOptions(t *testing.T) {
	assert.Empty(t, endpointOptions("http://collector:4318"))
	assert.Len(t, endpointOptions("collector:4318"), 2)
}
