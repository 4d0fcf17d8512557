package project_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/ticktick-access/internal/config"
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

func TestRegisterProjectTools(t *testing.T) {
	sc := newTestContext(t, "")
	s := mcpserver.NewMCPServer("test", "0.0.0")

	if err := RegisterProjectTools(s, sc); err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
}

func TestListProjectsHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/project" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":"p1","name":"Inbox"},{"id":"p2","name":"Work"}]`))
	}))
	defer srv.Close()

	sc := newTestContext(t, srv.URL)

	result, err := listProjectsHandler(sc)(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.IsError {
		t.Fatal("unexpected error result")
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}

	var payload struct {
		Projects []ticktick.Project `json:"projects"`
		Count    int                `json:"count"`
	}
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if payload.Count != 2 {
		t.Errorf("expected 2 projects, got %d", payload.Count)
	}
	if payload.Projects[0].Name != "Inbox" {
		t.Errorf("unexpected first project: %+v", payload.Projects[0])
	}
}
