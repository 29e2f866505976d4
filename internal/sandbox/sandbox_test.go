package sandbox

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxStdoutBytes != 5*1024 {
		t.Errorf("expected 5KiB stdout cap, got %d", cfg.MaxStdoutBytes)
	}
	if cfg.MaxStderrBytes != 2*1024 {
		t.Errorf("expected 2KiB stderr cap, got %d", cfg.MaxStderrBytes)
	}
	if cfg.Language != "python3" {
		t.Errorf("expected default language python3, got %q", cfg.Language)
	}
}

func TestRunnerSetConfig(t *testing.T) {
	r := New(DefaultConfig())
	cfg := r.Config()
	cfg.MaxStdoutBytes = 100
	r.SetConfig(cfg)
	if got := r.Config().MaxStdoutBytes; got != 100 {
		t.Errorf("expected updated config to stick, got %d", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 3); got != "hel" {
		t.Errorf("expected truncation to 3 bytes, got %q", got)
	}
	if got := truncate("hi", 10); got != "hi" {
		t.Errorf("expected untouched string under cap, got %q", got)
	}
}
