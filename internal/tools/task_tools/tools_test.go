package task_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/ticktick-access/internal/config"
	"github.com/teemow/ticktick-access/internal/security"
	"github.com/teemow/ticktick-access/internal/server"
	"github.com/teemow/ticktick-access/internal/ticktick"
)

func newTestContext(t *testing.T, apiURL string) *server.ServerContext {
	t.Helper()
	t.Setenv(config.EnvCacheHome, t.TempDir())

	store := config.NewStoreAt(t.TempDir())
	if err := store.SaveToken("test-token"); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}

	sc, err := server.NewServerContext(context.Background(), store)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })

	if apiURL != "" {
		sc.SetClient(ticktick.NewClientWithBaseURL(context.Background(), "test-token", apiURL))
	}
	return sc
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestRegisterTaskTools(t *testing.T) {
	sc := newTestContext(t, "")
	s := mcpserver.NewMCPServer("test", "0.0.0")

	if err := RegisterTaskTools(s, sc); err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
}

func TestListTasksHandler_MissingProjectID(t *testing.T) {
	sc := newTestContext(t, "")

	result, err := listTasksHandler(sc)(context.Background(), toolRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing project_id")
	}
}

func TestListTasksHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/project/p1/data" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"project":{"id":"p1"},"tasks":[{"id":"t1","status":0},{"id":"t2","status":2}]}`))
	}))
	defer srv.Close()

	sc := newTestContext(t, srv.URL)

	result, err := listTasksHandler(sc)(context.Background(), toolRequest(map[string]any{
		"project_id": "p1",
	}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var summary ticktick.TasksSummary
	if err := json.Unmarshal([]byte(resultText(t, result)), &summary); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if summary.Count != 2 {
		t.Errorf("expected 2 tasks, got %d", summary.Count)
	}
	if summary.Completed != 1 || summary.Incomplete != 1 {
		t.Errorf("unexpected status breakdown: %+v", summary)
	}
}

func TestCreateTaskHandler_MissingTitle(t *testing.T) {
	sc := newTestContext(t, "")

	result, err := createTaskHandler(sc)(context.Background(), toolRequest(map[string]any{
		"project_id": "p1",
	}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing title")
	}
}

func TestCreateTaskHandler(t *testing.T) {
	var created ticktick.Task
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/task" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&created); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		created.ID = "t-new"
		_ = json.NewEncoder(w).Encode(created)
	}))
	defer srv.Close()

	sc := newTestContext(t, srv.URL)

	result, err := createTaskHandler(sc)(context.Background(), toolRequest(map[string]any{
		"project_id": "p1",
		"title":      "Write report",
		"priority":   float64(3),
		"reminders":  []any{"TRIGGER:-PT30M"},
	}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	if created.Title != "Write report" {
		t.Errorf("expected title to reach the API, got %q", created.Title)
	}
	if created.Priority != 3 {
		t.Errorf("expected priority 3, got %d", created.Priority)
	}
	if len(created.Reminders) != 1 || created.Reminders[0] != "TRIGGER:-PT30M" {
		t.Errorf("unexpected reminders: %v", created.Reminders)
	}
	if !strings.Contains(resultText(t, result), "t-new") {
		t.Error("expected created task id in result")
	}
}

func TestUpdateTaskHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/project/p1/task/t1":
			_, _ = w.Write([]byte(`{"id":"t1","projectId":"p1","title":"Old title","priority":1}`))
		case r.Method == http.MethodPost && r.URL.Path == "/task/t1":
			var task ticktick.Task
			if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
				t.Errorf("failed to decode request body: %v", err)
			}
			if task.Title != "New title" {
				t.Errorf("expected updated title, got %q", task.Title)
			}
			if task.Priority != 1 {
				t.Errorf("expected unchanged priority 1, got %d", task.Priority)
			}
			_ = json.NewEncoder(w).Encode(task)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	sc := newTestContext(t, srv.URL)

	result, err := updateTaskHandler(sc)(context.Background(), toolRequest(map[string]any{
		"project_id": "p1",
		"task_id":    "t1",
		"title":      "New title",
	}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
}

func TestCompleteTaskHandler_MissingTaskID(t *testing.T) {
	sc := newTestContext(t, "")

	result, err := completeTaskHandler(sc)(context.Background(), toolRequest(map[string]any{
		"project_id": "p1",
	}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing task_id")
	}
}

func TestDeleteTaskHandler_RequiresOTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no API call expected, got %s %s", r.Method, r.URL.Path)
	}))
	defer srv.Close()

	sc := newTestContext(t, srv.URL)

	result, err := deleteTaskHandler(sc)(context.Background(), toolRequest(map[string]any{
		"project_id": "p1",
		"task_id":    "t1",
	}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected error result without an OTP")
	}
	if !strings.Contains(resultText(t, result), "OTP required") {
		t.Errorf("expected OTP requirement in result, got %s", resultText(t, result))
	}
}

func TestDeleteTaskHandler_DisabledByPolicy(t *testing.T) {
	sc := newTestContext(t, "")
	if err := sc.ConfigStore().SetSetting(config.KeyDeletionAccess, "disabled"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}

	result, err := deleteTaskHandler(sc)(context.Background(), toolRequest(map[string]any{
		"project_id": "p1",
		"task_id":    "t1",
	}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected error result when deletion is disabled")
	}
	if !strings.Contains(resultText(t, result), "disabled") {
		t.Errorf("expected policy refusal in result, got %s", resultText(t, result))
	}
}

func TestDeleteTaskHandler_WithOTP(t *testing.T) {
	var deleted bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/project/p1/task/t1":
			_, _ = w.Write([]byte(`{"id":"t1","projectId":"p1","title":"Doomed task"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/project/p1/task/t1":
			deleted = true
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	sc := newTestContext(t, srv.URL)

	code, err := sc.OTPStore().Generate(security.PurposeDelete, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate OTP: %v", err)
	}

	result, err := deleteTaskHandler(sc)(context.Background(), toolRequest(map[string]any{
		"project_id": "p1",
		"task_id":    "t1",
		"otp":        code,
	}))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	if !deleted {
		t.Error("expected the remote delete to run")
	}
	if !strings.Contains(resultText(t, result), `"archived": true`) {
		t.Errorf("expected archived snapshot in result, got %s", resultText(t, result))
	}
}
