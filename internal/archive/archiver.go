package archive

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/teemow/ticktick-access/internal/config"
	"github.com/teemow/ticktick-access/internal/logging"
)

const (
	// subdir under the cache root for auto-archived snapshots.
	deletedTasksDir = "deleted_tasks"

	// logFileName is the shared append-only audit log. It always lives in
	// the cache root, even when snapshots go to a custom destination.
	logFileName = "deleted-tasks.log"

	fileTimestampLayout = "20060102150405"
	logTimestampLayout  = "2006-01-02 15:04:05"
)

// Archiver writes pre-deletion snapshots and audit log lines.
type Archiver struct {
	cacheDir string
	now      func() time.Time
	logger   *slog.Logger
}

// New returns an Archiver rooted at the default cache directory.
func New() *Archiver {
	return NewAt(config.CacheDir())
}

// NewAt returns an Archiver rooted at an explicit cache directory.
func NewAt(cacheDir string) *Archiver {
	return &Archiver{
		cacheDir: cacheDir,
		now:      time.Now,
		logger:   slog.Default(),
	}
}

// SnapshotName derives the snapshot filename for a task deleted at ts.
// It is a pure function of its inputs so a given (task, project, second)
// always produces the same name.
func SnapshotName(taskID, projectID string, ts time.Time) string {
	return fmt.Sprintf("task_%s_project_%s.deleted_%s.json", taskID, projectID, ts.Format(fileTimestampLayout))
}

// Archive saves a snapshot of the task and appends an audit log line.
// dest overrides the snapshot directory when non-empty; the audit log
// stays in the cache root either way.
//
// Archive never returns an error: I/O failures are logged and swallowed so
// a failed archive does not by itself block the deletion that follows. The
// caller decides whether to treat the absence of a snapshot as fatal.
func (a *Archiver) Archive(projectID, taskID string, taskData map[string]any, dest string) {
	logger := a.logger.With(logging.Task(taskID), logging.Project(projectID))

	dir := dest
	if dir == "" {
		dir = filepath.Join(a.cacheDir, deletedTasksDir)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		logger.Error("failed to create archive directory", logging.Err(err), slog.String(logging.KeyPath, dir))
		return
	}

	now := a.now()
	snapshotPath := filepath.Join(dir, SnapshotName(taskID, projectID, now))

	data, err := json.MarshalIndent(taskData, "", "  ")
	if err != nil {
		logger.Error("failed to encode task snapshot", logging.Err(err))
		return
	}
	if err := os.WriteFile(snapshotPath, data, 0o600); err != nil {
		logger.Error("failed to write task snapshot", logging.Err(err), slog.String(logging.KeyPath, snapshotPath))
		return
	}

	if err := a.appendLogLine(projectID, taskID, snapshotPath, now); err != nil {
		logger.Error("failed to append deletion log", logging.Err(err))
		return
	}

	logger.Info("archived deleted task", slog.String(logging.KeyPath, snapshotPath))
}

func (a *Archiver) appendLogLine(projectID, taskID, snapshotPath string, ts time.Time) error {
	if err := os.MkdirAll(a.cacheDir, 0o700); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(a.cacheDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	line := fmt.Sprintf("deleted task %s in project %s on %s | snapshot: %s\n",
		taskID, projectID, ts.Format(logTimestampLayout), snapshotPath)
	_, err = f.WriteString(line)
	return err
}
