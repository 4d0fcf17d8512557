package instrumentation

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.Nil(t, provider.PrometheusHandler())
	require.NotNil(t, provider.Metrics())

	// No-op recorder must be safe to use.
	provider.Metrics().RecordToolInvocation(context.Background(), "list_projects", StatusSuccess, time.Millisecond)

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProviderPrometheus(t *testing.T) {
	config := Config{
		ServiceName:     "ticktick-access-test",
		ServiceVersion:  "test",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
	}

	provider, err := NewProvider(context.Background(), config)
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	assert.True(t, provider.Enabled())

	handler := provider.PrometheusHandler()
	require.NotNil(t, handler)

	provider.Metrics().RecordToolInvocation(context.Background(), "delete_task", StatusSuccess, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "mcp_tool_invocations_total")
}

func TestNewProviderStdout(t *testing.T) {
	config := Config{
		ServiceName:     "ticktick-access-test",
		Enabled:         true,
		MetricsExporter: ExporterStdout,
	}

	provider, err := NewProvider(context.Background(), config)
	require.NoError(t, err)

	assert.True(t, provider.Enabled())
	assert.Nil(t, provider.PrometheusHandler(), "stdout exporter has no scrape endpoint")

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProviderUnsupportedExporter(t *testing.T) {
	config := Config{
		ServiceName:     "ticktick-access-test",
		Enabled:         true,
		MetricsExporter: "otlp",
	}

	_, err := NewProvider(context.Background(), config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported metrics exporter")
}
