package deletion

import (
	"context"
	"log/slog"

	"github.com/teemow/ticktick-access/internal/config"
	"github.com/teemow/ticktick-access/internal/logging"
	"github.com/teemow/ticktick-access/internal/security"
)

// Access policy values for the deletion.access setting.
const (
	AccessEnabled  = "enabled"
	AccessElevated = "elevated"
	AccessDisabled = "disabled"
)

// SettingsReader supplies effective setting values. Unknown keys read as
// nil.
type SettingsReader interface {
	GetSetting(key string) (any, error)
}

// OTPValidator checks and consumes a one-time password.
type OTPValidator interface {
	Validate(purpose, candidate string) bool
}

// Archiver snapshots a task before destruction. Implementations are
// best-effort and never fail the caller.
type Archiver interface {
	Archive(projectID, taskID string, taskData map[string]any, dest string)
}

// TaskAPI is the slice of the remote API the engine needs: a raw snapshot
// fetch and the destructive delete.
type TaskAPI interface {
	GetTaskRaw(ctx context.Context, projectID, taskID string) (map[string]any, error)
	DeleteTask(ctx context.Context, projectID, taskID string) error
}

// Request carries the caller-controlled inputs for one delete invocation.
type Request struct {
	// Elevated is asserted by callers subject to OTP proof. MCP tool
	// callers always set it; CLI callers do not unless asked to.
	Elevated bool

	// OTP is the one-time password presented by elevated callers.
	OTP string

	// Destination forces archival to an explicit directory, overriding
	// the disable_auto_archive setting.
	Destination string
}

// Result is the structured outcome of a delete invocation. Exactly one of
// Message and Error is set.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	Archived bool   `json:"archived,omitempty"`
}

// Status maps the outcome onto the metric label values.
func (r Result) Status() string {
	if r.Success {
		return "success"
	}
	return "error"
}

func failure(reason string) Result {
	return Result{Success: false, Error: reason}
}

// Engine orchestrates policy-checked task deletion.
type Engine struct {
	settings SettingsReader
	otp      OTPValidator
	archiver Archiver
	api      TaskAPI
	logger   *slog.Logger
}

// NewEngine wires an Engine from its collaborators.
func NewEngine(settings SettingsReader, otp OTPValidator, archiver Archiver, api TaskAPI) *Engine {
	return &Engine{
		settings: settings,
		otp:      otp,
		archiver: archiver,
		api:      api,
		logger:   slog.Default(),
	}
}

// Delete runs the full deletion state machine for one task. It never
// returns a Go error: every branch, including remote failures, resolves to
// a Result.
func (e *Engine) Delete(ctx context.Context, projectID, taskID string, req Request) Result {
	logger := e.logger.With(logging.Project(projectID), logging.Task(taskID), logging.Operation("delete_task"))

	// 1. Access check. A read failure on settings falls back to the
	// manifest default rather than blocking deletion outright.
	access, err := e.settings.GetSetting(config.KeyDeletionAccess)
	if err != nil {
		logger.Warn("failed to read deletion access setting", logging.Err(err))
	}
	if asString(access) == AccessDisabled {
		logger.Info("deletion refused by policy", logging.Status(logging.StatusError))
		return failure("Task deletion is disabled in settings")
	}

	// 2. Elevation check. Validation consumes the OTP even when the
	// overall operation fails afterwards.
	if req.Elevated {
		if req.OTP == "" {
			return failure("OTP required: elevated deletion needs a one-time password (run 'ticktick otp')")
		}
		if !e.otp.Validate(security.PurposeDelete, req.OTP) {
			return failure("Invalid or expired OTP")
		}
	}

	// 3. Archive-policy resolution. An explicit destination always wins;
	// otherwise the disable_auto_archive setting decides, with the
	// deletion.archive setting naming the directory.
	shouldArchive := true
	dest := req.Destination
	if dest == "" {
		disabled, err := e.settings.GetSetting(config.KeyDeletionDisableAutoArchive)
		if err != nil {
			logger.Warn("failed to read auto-archive setting", logging.Err(err))
		}
		if asBool(disabled) {
			shouldArchive = false
		} else {
			archiveTo, err := e.settings.GetSetting(config.KeyDeletionArchive)
			if err != nil {
				logger.Warn("failed to read archive destination setting", logging.Err(err))
			}
			dest = asString(archiveTo)
		}
	}

	// 4. Best-effort archival: a failed fetch is logged and deletion
	// proceeds. The snapshot is a courtesy, not a precondition.
	archived := false
	if shouldArchive {
		taskData, err := e.api.GetTaskRaw(ctx, projectID, taskID)
		if err != nil {
			logger.Warn("could not fetch task for archival, deleting without snapshot", logging.Err(err))
		} else {
			e.archiver.Archive(projectID, taskID, taskData, dest)
			archived = true
		}
	}

	// 5. Destruction.
	if err := e.api.DeleteTask(ctx, projectID, taskID); err != nil {
		logger.Error("remote delete failed", logging.Err(err))
		return failure("Failed to delete task")
	}

	logger.Info("task deleted", logging.Status(logging.StatusSuccess), slog.Bool("archived", archived))
	return Result{Success: true, Message: "Task " + taskID + " deleted successfully", Archived: archived}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
