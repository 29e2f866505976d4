// Package config loads the settings that wire the core's tiers together:
// sandbox resource limits, promotion thresholds, the S2 provider/key
// selection, and the on-disk state directory. Every value is read once
// from the process environment (LLM_PROVIDER, ANTHROPIC_API_KEY,
// OPENAI_API_KEY, and the CASCADE_* variables below) with a documented
// default; there is no CLI and no interactive wizard.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds every environment-tunable knob the core's wiring needs.
// Each field has a DefaultConfig value so a zero-effort caller gets a
// working local setup with S0/S1 only (no S2 provider configured).
type Config struct {
	// StateDir is the directory that holds state.json and promotions.log.
	StateDir string

	// Sandbox limits, named directly after spec.md §4.1's defaults.
	Language         string
	ProgramTimeout   time.Duration
	CommandTimeout   time.Duration
	MaxStdoutBytes   int
	MaxStderrBytes   int
	MaxReadFileBytes int
	MaxListEntries   int

	// Promotion thresholds, spec.md §4.6.
	S2ToS1Threshold int
	S1ToS0Threshold int

	// S2 provider selection. Provider is one of "claude", "openai",
	// "ollama", "lmstudio", "openrouter", "groq", "together", "custom", or
	// "" (no S2 — S0/S1-only operation). The last six route through
	// brain.UniversalProvider's OpenAI-compatible presets. APIKey and
	// Model fall back to the provider's own environment variables when
	// unset here.
	Provider string
	APIKey   string
	Model    string
	BaseURL  string

	// MaxS2Retries bounds the orchestrator's bounded-retry loop (spec.md
	// §4.8, default 3).
	MaxS2Retries int

	// DailyBudgetUSD/MonthlyBudgetUSD feed budget.Tracker; zero or
	// negative means unlimited (budget.Tracker's own convention).
	DailyBudgetUSD   float64
	MonthlyBudgetUSD float64

	// OutcomeDBPath, when non-empty, wires a SQLite-backed storage.Store
	// as the orchestrator's OutcomeStore (§6 "Result emission
	// interface"). Empty by default — outcome persistence beyond the
	// mandated PromotionState/promotions.log is opt-in.
	OutcomeDBPath string
}

// DefaultConfig mirrors sandbox.DefaultConfig()'s limits plus the
// promotion package's DefaultS2ToS1Threshold/DefaultS1ToS0Threshold, with
// no S2 provider configured (S0/S1-only) and an unlimited budget.
func DefaultConfig() Config {
	return Config{
		StateDir:         filepath.Join(defaultDataDir(), "promotion"),
		Language:         "python3",
		ProgramTimeout:   5 * time.Second,
		CommandTimeout:   10 * time.Second,
		MaxStdoutBytes:   5 * 1024,
		MaxStderrBytes:   2 * 1024,
		MaxReadFileBytes: 10 * 1024,
		MaxListEntries:   50,
		S2ToS1Threshold:  3,
		S1ToS0Threshold:  10,
		MaxS2Retries:     3,
		DailyBudgetUSD:   -1,
		MonthlyBudgetUSD: -1,
	}
}

// defaultDataDir returns ~/.cascade-core, falling back to the working
// directory's "./data" if the home directory can't be resolved.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".cascade-core")
}

// FromEnv loads a Config starting from DefaultConfig and overriding each
// field whose environment variable is set: LLM_PROVIDER wins outright,
// otherwise ANTHROPIC_API_KEY/OPENAI_API_KEY act as an implicit provider
// signal.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CASCADE_DATA"); v != "" {
		cfg.StateDir = filepath.Join(v, "promotion")
	}
	if v := os.Getenv("CASCADE_OUTCOME_DB"); v != "" {
		cfg.OutcomeDBPath = v
	}
	if v := os.Getenv("CASCADE_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := durationEnv("CASCADE_PROGRAM_TIMEOUT"); v > 0 {
		cfg.ProgramTimeout = v
	}
	if v := durationEnv("CASCADE_COMMAND_TIMEOUT"); v > 0 {
		cfg.CommandTimeout = v
	}
	if v := intEnv("CASCADE_MAX_STDOUT_BYTES"); v > 0 {
		cfg.MaxStdoutBytes = v
	}
	if v := intEnv("CASCADE_MAX_STDERR_BYTES"); v > 0 {
		cfg.MaxStderrBytes = v
	}
	if v := intEnv("CASCADE_S2_TO_S1_THRESHOLD"); v > 0 {
		cfg.S2ToS1Threshold = v
	}
	if v := intEnv("CASCADE_S1_TO_S0_THRESHOLD"); v > 0 {
		cfg.S1ToS0Threshold = v
	}
	if v := intEnv("CASCADE_MAX_S2_RETRIES"); v > 0 {
		cfg.MaxS2Retries = v
	}
	if v := floatEnv("CASCADE_DAILY_BUDGET_USD"); v != 0 {
		cfg.DailyBudgetUSD = v
	}
	if v := floatEnv("CASCADE_MONTHLY_BUDGET_USD"); v != 0 {
		cfg.MonthlyBudgetUSD = v
	}

	// Provider resolution: explicit LLM_PROVIDER wins, otherwise infer
	// from whichever API key is present.
	switch {
	case os.Getenv("LLM_PROVIDER") != "":
		cfg.Provider = os.Getenv("LLM_PROVIDER")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "claude"
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
	}

	switch cfg.Provider {
	case "claude", "anthropic":
		cfg.APIKey = firstNonEmpty(os.Getenv("LLM_API_KEY"), os.Getenv("ANTHROPIC_API_KEY"))
		cfg.Model = firstNonEmpty(os.Getenv("CASCADE_S2_MODEL"), "claude-sonnet-4-20250514")
	case "openai":
		cfg.APIKey = firstNonEmpty(os.Getenv("LLM_API_KEY"), os.Getenv("OPENAI_API_KEY"))
		cfg.Model = firstNonEmpty(os.Getenv("CASCADE_S2_MODEL"), "gpt-4o")
	default:
		cfg.APIKey = os.Getenv("LLM_API_KEY")
		cfg.Model = os.Getenv("CASCADE_S2_MODEL")
	}
	cfg.BaseURL = os.Getenv("CASCADE_S2_BASE_URL")

	return cfg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func intEnv(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

func floatEnv(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func durationEnv(key string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return v
}
