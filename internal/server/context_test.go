package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/ticktick-access/internal/config"
)

func newTestContext(t *testing.T, token string) *ServerContext {
	t.Helper()
	t.Setenv("TICKTICK_ACCESS_TOKEN", "")
	t.Setenv(config.EnvCacheHome, t.TempDir())

	store := config.NewStoreAt(t.TempDir())
	if token != "" {
		require.NoError(t, store.SaveToken(token))
	}

	sc, err := NewServerContext(context.Background(), store)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestNewServerContextRequiresStore(t *testing.T) {
	_, err := NewServerContext(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config store is required")
}

func TestClientRequiresToken(t *testing.T) {
	sc := newTestContext(t, "")

	assert.False(t, sc.HasToken())
	_, err := sc.Client()
	require.Error(t, err)
}

func TestClientIsCached(t *testing.T) {
	sc := newTestContext(t, "tok-1")

	first, err := sc.Client()
	require.NoError(t, err)
	second, err := sc.Client()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestEngineIsBuiltLazily(t *testing.T) {
	sc := newTestContext(t, "tok-1")

	engine, err := sc.Engine()
	require.NoError(t, err)
	require.NotNil(t, engine)

	again, err := sc.Engine()
	require.NoError(t, err)
	assert.Same(t, engine, again)
}

func TestEngineFailsWithoutToken(t *testing.T) {
	sc := newTestContext(t, "")

	_, err := sc.Engine()
	require.Error(t, err)
}

func TestMetricsDefaultsToNoOp(t *testing.T) {
	sc := newTestContext(t, "")

	require.NotNil(t, sc.Metrics())
	require.NotNil(t, sc.AuditLogger())
}

func TestShutdownIsIdempotent(t *testing.T) {
	sc := newTestContext(t, "")

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("context should be cancelled after shutdown")
	}
}
