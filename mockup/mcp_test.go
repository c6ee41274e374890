package mockup

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/framecap/drive"
)

var testMCPImpl = &mcp.Implementation{Name: "framecap-test", Version: "0.1.0"}

func mcpSession(t *testing.T, page *fakePage) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testMCPImpl, nil)
	composer := NewComposer(Theme{}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	factory := func(context.Context) (drive.Page, func() error, error) {
		return page, func() error { return nil }, nil
	}
	RegisterMCP(srv, factory, composer)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestMCP_Compose(t *testing.T) {
	page := testPage()
	session := mcpSession(t, page)
	out := filepath.Join(t.TempDir(), "framed.png")

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "framecap_compose",
		Arguments: map[string]any{
			"url": "https://example.com",
			"out": out,
		},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %v", result.Content)
	}

	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatal("expected TextContent")
	}
	var resp composeResult
	if err := json.Unmarshal([]byte(tc.Text), &resp); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if resp.Path != out || resp.Bytes == 0 {
		t.Errorf("unexpected result %+v", resp)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file not written: %v", err)
	}
	if page.navs != 1 {
		t.Errorf("tool navigated %d times, want 1", page.navs)
	}
	assertSurfacesClosed(t, page)
}

func TestMCP_ComposeRejectsBadFormat(t *testing.T) {
	session := mcpSession(t, testPage())

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "framecap_compose",
		Arguments: map[string]any{
			"url":    "https://example.com",
			"out":    filepath.Join(t.TempDir(), "x.png"),
			"format": "bmp",
		},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for bmp format")
	}
}

func TestMCP_ComposeRequiresArgs(t *testing.T) {
	session := mcpSession(t, testPage())

	for _, args := range []map[string]any{
		{"out": "x.png"},
		{"url": "https://example.com"},
	} {
		result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
			Name:      "framecap_compose",
			Arguments: args,
		})
		// Missing args fail either at schema validation or in the
		// handler; both must refuse the call.
		if err == nil && !result.IsError {
			t.Errorf("expected error for args %v", args)
		}
	}
}
