package config

import (
	"context"
	"io"
	"testing"

	"github.com/cedendahlkim/cascade-core/internal/task"
)

func TestWire_BuildsWorkingOrchestratorWithoutS2(t *testing.T) {
	clearCascadeEnv(t)
	cfg := DefaultConfig()
	cfg.StateDir = t.TempDir()

	orch, err := Wire(cfg, io.Discard)
	if err != nil {
		t.Fatalf("Wire: %v", err)
	}

	tk := &task.Task{
		ID:         "two-sum-1",
		Title:      "Two sum",
		Category:   "algorithms",
		Difficulty: 2,
		Kind:       task.KindIO,
		TestCases: []task.TestCase{
			{Input: "4\n2\n7\n11\n15\n9\n", Expected: "0 1"},
		},
	}

	outcome, err := orch.Solve(context.Background(), tk)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if outcome.Tier == "" {
		t.Error("expected a deterministic registry match for a two-sum task, got unsolved")
	}
}

func TestBuildS2Client_RoutesLocalProvidersThroughUniversalProvider(t *testing.T) {
	clearCascadeEnv(t)
	cfg := DefaultConfig()
	cfg.Provider = "ollama"
	cfg.Model = "llama3.3"

	client := buildS2Client(cfg)
	if client == nil {
		t.Fatal("expected a non-nil S2 client for the ollama provider (no API key required)")
	}
}

func TestBuildS2Client_RemoteUniversalProviderRequiresAPIKey(t *testing.T) {
	clearCascadeEnv(t)
	cfg := DefaultConfig()
	cfg.Provider = "openrouter"

	if client := buildS2Client(cfg); client != nil {
		t.Error("expected nil S2 client when openrouter has no API key configured")
	}

	cfg.APIKey = "sk-or-test"
	if client := buildS2Client(cfg); client == nil {
		t.Error("expected a non-nil S2 client once an API key is configured")
	}
}

func TestBuildS2Client_UnknownProviderYieldsNil(t *testing.T) {
	clearCascadeEnv(t)
	cfg := DefaultConfig()
	cfg.Provider = "does-not-exist"

	if client := buildS2Client(cfg); client != nil {
		t.Error("expected nil S2 client for an unrecognized provider name")
	}
}
