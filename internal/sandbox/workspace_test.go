package sandbox

import (
	"context"
	"testing"
	"time"
)

func TestWorkspaceExecuteAndReadFile(t *testing.T) {
	r := New(DefaultConfig())
	ws, err := r.OpenWorkspace()
	if err != nil {
		t.Fatalf("OpenWorkspace: %v", err)
	}
	defer ws.Close()

	res, err := ws.Execute(context.Background(), "echo hi > out.txt", time.Second, true)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %+v", res)
	}
	if len(ws.History) != 1 {
		t.Errorf("expected recorded history of 1, got %d", len(ws.History))
	}

	content, ok := ws.ReadFile("out.txt")
	if !ok {
		t.Fatalf("expected out.txt to exist")
	}
	if content != "hi\n" {
		t.Errorf("expected 'hi\\n', got %q", content)
	}
}

func TestWorkspaceBlockedCommand(t *testing.T) {
	r := New(DefaultConfig())
	ws, err := r.OpenWorkspace()
	if err != nil {
		t.Fatalf("OpenWorkspace: %v", err)
	}
	defer ws.Close()

	res, err := ws.Execute(context.Background(), "rm -rf /", time.Second, true)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Blocked || res.ExitCode != 126 {
		t.Errorf("expected blocked exit 126, got %+v", res)
	}
}

func TestWorkspaceListFiles(t *testing.T) {
	r := New(DefaultConfig())
	ws, err := r.OpenWorkspace()
	if err != nil {
		t.Fatalf("OpenWorkspace: %v", err)
	}
	defer ws.Close()

	if _, err := ws.Execute(context.Background(), "touch a.txt b.txt", time.Second, false); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	files, err := ws.ListFiles(".")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %v", files)
	}
}
