package resources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
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

func readRequest(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func TestRegisterTickTickResources(t *testing.T) {
	sc := newTestContext(t, "")
	s := mcpserver.NewMCPServer("test", "0.0.0")

	if err := RegisterTickTickResources(s, sc); err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
}

func TestProjectIDFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"ticktick://tasks/p1", "p1"},
		{"ticktick://tasks/p1/", "p1"},
		{"ticktick://tasks/", ""},
		{"ticktick://projects", ""},
		{"http://example.com/tasks/p1", ""},
	}

	for _, tt := range tests {
		if got := projectIDFromURI(tt.uri); got != tt.want {
			t.Errorf("projectIDFromURI(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestHandleProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/project" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":"p1","name":"Inbox"}]`))
	}))
	defer srv.Close()

	sc := newTestContext(t, srv.URL)

	contents, err := handleProjects(context.Background(), readRequest("ticktick://projects"), sc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected one content item, got %d", len(contents))
	}

	text, ok := contents[0].(*mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected text contents, got %T", contents[0])
	}
	if text.URI != "ticktick://projects" {
		t.Errorf("unexpected URI %q", text.URI)
	}
	if text.MIMEType != "application/json" {
		t.Errorf("unexpected MIME type %q", text.MIMEType)
	}
	if !strings.Contains(text.Text, "Inbox") {
		t.Errorf("expected project name in contents, got %s", text.Text)
	}
}

func TestHandleProjectTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/project/p1/data" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"project":{"id":"p1"},"tasks":[{"id":"t1","title":"Buy milk","status":0}]}`))
	}))
	defer srv.Close()

	sc := newTestContext(t, srv.URL)

	contents, err := handleProjectTasks(context.Background(), readRequest("ticktick://tasks/p1"), sc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	text, ok := contents[0].(*mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected text contents, got %T", contents[0])
	}
	if !strings.Contains(text.Text, "Buy milk") {
		t.Errorf("expected task title in contents, got %s", text.Text)
	}
}

func TestHandleProjectTasks_BadURI(t *testing.T) {
	sc := newTestContext(t, "")

	_, err := handleProjectTasks(context.Background(), readRequest("ticktick://tasks/"), sc)
	if err == nil {
		t.Error("expected an error for a URI without a project id")
	}
}
