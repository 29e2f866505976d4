package sandbox

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRunProgramEchoesStdout(t *testing.T) {
	if _, err := interpreterArgv("python3", "/tmp/x"); err != nil {
		t.Fatalf("interpreterArgv: %v", err)
	}
	r := New(DefaultConfig())
	res, err := r.RunProgram(context.Background(), "print(input())", "hello\n", 2*time.Second)
	if err != nil {
		t.Fatalf("RunProgram error: %v", err)
	}
	if !res.OK {
		t.Fatalf("expected ok, got %+v", res)
	}
	if strings.TrimSpace(res.Stdout) != "hello" {
		t.Errorf("expected stdout 'hello', got %q", res.Stdout)
	}
}

func TestRunProgramTimesOut(t *testing.T) {
	r := New(DefaultConfig())
	res, err := r.RunProgram(context.Background(), "import time\ntime.sleep(5)", "", 100*time.Millisecond)
	if err != nil {
		t.Fatalf("RunProgram error: %v", err)
	}
	if !res.TimedOut {
		t.Errorf("expected TimedOut=true, got %+v", res)
	}
}

func TestRunProgramUnsupportedLanguage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Language = "cobol"
	r := New(cfg)
	if _, err := r.RunProgram(context.Background(), "", "", time.Second); err == nil {
		t.Errorf("expected error for unsupported language")
	}
}
