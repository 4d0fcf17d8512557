package instrumentation

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToolInvocationComplete(t *testing.T) {
	ti := NewToolInvocation("delete_task").
		WithTarget("proj-1", "task-1").
		WithOperation(OperationDelete)

	ti.CompleteSuccess()

	assert.True(t, ti.Success)
	assert.Equal(t, StatusSuccess, ti.Status())
	assert.Empty(t, ti.Error)
	assert.GreaterOrEqual(t, ti.Duration, time.Duration(0))
}

func TestToolInvocationCompleteWithError(t *testing.T) {
	ti := NewToolInvocation("update_task")
	ti.CompleteWithError(errors.New("boom"))

	assert.False(t, ti.Success)
	assert.Equal(t, StatusError, ti.Status())
	assert.Equal(t, "boom", ti.Error)
}

func TestToolInvocationLogAttrs(t *testing.T) {
	ti := NewToolInvocation("delete_task").
		WithTarget("proj-1", "task-1").
		WithOperation(OperationDelete).
		CompleteSuccess()

	keys := make(map[string]bool)
	for _, attr := range ti.LogAttrs() {
		keys[attr.Key] = true
	}

	assert.True(t, keys["tool"])
	assert.True(t, keys["project_id"])
	assert.True(t, keys["task_id"])
	assert.True(t, keys["operation"])
	assert.False(t, keys["error"], "no error attr on success")
}

func TestAuditLoggerLogsInvocation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	al := NewAuditLogger(logger)

	al.LogToolInvocation(NewToolInvocation("delete_task").WithTarget("p", "t").CompleteSuccess())

	out := buf.String()
	assert.Contains(t, out, "tool_executed")
	assert.Contains(t, out, "delete_task")
}

func TestAuditLoggerFailureLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	al := NewAuditLogger(logger)

	al.LogToolInvocation(NewToolInvocation("delete_task").CompleteWithError(errors.New("denied")))

	out := buf.String()
	assert.Contains(t, out, "tool_failed")
	assert.Contains(t, out, "denied")
}

func TestAuditLoggerDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: false})

	al.LogToolInvocation(NewToolInvocation("delete_task").CompleteSuccess())

	assert.Empty(t, buf.String())
}
