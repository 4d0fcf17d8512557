package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/teemow/ticktick-access/internal/archive"
	"github.com/teemow/ticktick-access/internal/config"
	"github.com/teemow/ticktick-access/internal/deletion"
	"github.com/teemow/ticktick-access/internal/instrumentation"
	"github.com/teemow/ticktick-access/internal/security"
	"github.com/teemow/ticktick-access/internal/ticktick"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	store    *config.Store
	otp      *security.Store
	archiver *archive.Archiver
	client   *ticktick.Client
	engine   *deletion.Engine
	metrics  *instrumentation.Metrics
	audit    *instrumentation.AuditLogger
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context. The TickTick client is
// not created here: it needs an access token, which may not exist yet,
// so it is built lazily on first use.
func NewServerContext(ctx context.Context, store *config.Store) (*ServerContext, error) {
	if store == nil {
		return nil, fmt.Errorf("config store is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		store:    store,
		otp:      security.NewStore(),
		archiver: archive.New(),
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// ConfigStore returns the configuration store
func (sc *ServerContext) ConfigStore() *config.Store {
	return sc.store
}

// OTPStore returns the one-time password store
func (sc *ServerContext) OTPStore() *security.Store {
	return sc.otp
}

// Archiver returns the snapshot archiver
func (sc *ServerContext) Archiver() *archive.Archiver {
	return sc.archiver
}

// Client returns the TickTick API client, creating and caching it on
// first use. Fails when no access token is configured.
func (sc *ServerContext) Client() (*ticktick.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.client != nil {
		return sc.client, nil
	}

	token, err := sc.store.Token()
	if err != nil {
		return nil, err
	}

	sc.client = ticktick.NewClient(sc.ctx, token)
	return sc.client, nil
}

// SetClient sets the TickTick API client. Used by tests and by the auth
// flow after a fresh token is obtained.
func (sc *ServerContext) SetClient(client *ticktick.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = client
	sc.engine = nil
}

// Engine returns the deletion policy engine, creating it on first use.
func (sc *ServerContext) Engine() (*deletion.Engine, error) {
	client, err := sc.Client()
	if err != nil {
		return nil, err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.engine == nil {
		sc.engine = deletion.NewEngine(sc.store, sc.otp, sc.archiver, client)
	}
	return sc.engine, nil
}

// SetMetrics sets the metrics recorder for tool handlers.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder. Never nil: a no-op recorder is
// returned when instrumentation was not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.metrics == nil {
		return &instrumentation.Metrics{}
	}
	return sc.metrics
}

// SetAuditLogger sets the audit logger for tool handlers.
func (sc *ServerContext) SetAuditLogger(audit *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.audit = audit
}

// AuditLogger returns the audit logger, defaulting to an enabled one.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.audit == nil {
		return instrumentation.NewAuditLogger(nil)
	}
	return sc.audit
}

// HasToken reports whether an access token is available.
func (sc *ServerContext) HasToken() bool {
	_, err := sc.store.Token()
	return err == nil
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
