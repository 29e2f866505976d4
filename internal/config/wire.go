package config

import (
	"io"
	"os"

	"github.com/cedendahlkim/cascade-core/internal/brain"
	"github.com/cedendahlkim/cascade-core/internal/budget"
	"github.com/cedendahlkim/cascade-core/internal/eval"
	"github.com/cedendahlkim/cascade-core/internal/mutation"
	"github.com/cedendahlkim/cascade-core/internal/observability"
	"github.com/cedendahlkim/cascade-core/internal/orchestrator"
	"github.com/cedendahlkim/cascade-core/internal/promotion"
	"github.com/cedendahlkim/cascade-core/internal/sandbox"
	"github.com/cedendahlkim/cascade-core/internal/solver/s0"
	"github.com/cedendahlkim/cascade-core/internal/solver/s2"
	"github.com/cedendahlkim/cascade-core/internal/storage"
)

// Wire builds a fully-connected Orchestrator from a Config: the sandbox
// runner, evaluation engine, both S0 registries, a disk-backed Promotion
// Pipeline, the mutation engine, a slog-backed Logger, and — only when a
// provider is configured — an S2 client over the selected brain.LLMProvider.
// Mirrors cmd/overhuman/main.go's top-level wiring sequence (build
// sandbox, then dependent subsystems, then the coordinator) without the
// agent/soul/senses layers that sequence also built.
func Wire(cfg Config, logWriter io.Writer) (*orchestrator.Orchestrator, error) {
	if logWriter == nil {
		logWriter = os.Stderr
	}

	runner := sandbox.New(sandbox.Config{
		Language:         cfg.Language,
		Timeout:          cfg.ProgramTimeout,
		CommandTimeout:   cfg.CommandTimeout,
		MaxStdoutBytes:   cfg.MaxStdoutBytes,
		MaxStderrBytes:   cfg.MaxStderrBytes,
		MaxReadFileBytes: cfg.MaxReadFileBytes,
		MaxListEntries:   cfg.MaxListEntries,
	})
	evalEngine := eval.New(runner)

	store := promotion.NewStore(cfg.StateDir)
	pipeline := promotion.NewWithStore(store)
	pipeline.SetS2ToS1Threshold(cfg.S2ToS1Threshold)
	pipeline.SetS1ToS0Threshold(cfg.S1ToS0Threshold)

	logger := observability.NewLogger("cascade-core", logWriter)
	metrics := observability.NewMetricsCollector(4096)

	deps := orchestrator.Dependencies{
		Sandbox:      runner,
		Eval:         evalEngine,
		S0IO:         s0.NewIORegistry(),
		S0State:      s0.NewStateRegistry(),
		Promotion:    pipeline,
		MaxS2Retries: cfg.MaxS2Retries,
		Mutation:     mutation.New(),
		Logger:       logger,
		Metrics:      metrics,
	}

	if client := buildS2Client(cfg); client != nil {
		deps.S2 = client
	}

	if cfg.OutcomeDBPath != "" {
		store, err := storage.NewSQLiteStore(cfg.OutcomeDBPath)
		if err != nil {
			return nil, err
		}
		deps.OutcomeStore = store
	}

	return orchestrator.New(deps), nil
}

// buildS2Client constructs the S2 synthesis client for whichever provider
// is configured, returning nil when Provider is unset (S0/S1-only
// operation — spec.md §4.8 treats a missing S2 as "return unsolved" after
// S1/cache miss, which orchestrator.Solve already handles for a nil S2).
//
// "claude"/"openai" go through their native adapters (claude.go/openai.go)
// since those speak each vendor's own wire format; "ollama", "lmstudio",
// "openrouter", "groq", "together" and "custom" route through
// brain.UniversalProvider's OpenAI-compatible preset configs, and any
// other name yields nil
// (spec.md §4.5 mandates no particular protocol, so a local/self-hosted
// model is just as valid an S2 backend as a vendor API).
func buildS2Client(cfg Config) *s2.Client {
	var provider brain.LLMProvider
	router := brain.NewModelRouter()

	switch cfg.Provider {
	case "claude", "anthropic":
		if cfg.APIKey == "" {
			return nil
		}
		opts := []brain.ClaudeOption{brain.WithClaudeDefaultModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, brain.WithClaudeBaseURL(cfg.BaseURL))
		}
		provider = brain.NewClaudeProvider(cfg.APIKey, opts...)
	case "openai":
		if cfg.APIKey == "" {
			return nil
		}
		opts := []brain.OpenAIOption{brain.WithOpenAIDefaultModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, brain.WithOpenAIBaseURL(cfg.BaseURL))
		}
		provider = brain.NewOpenAIProvider(cfg.APIKey, opts...)
	case "ollama", "lmstudio", "openrouter", "groq", "together", "custom":
		universal := buildUniversalProvider(cfg)
		if universal == nil {
			return nil
		}
		provider = universal
		router = brain.NewModelRouterWithModels(universal.ModelEntries())
		router.SetProvider(universal.Name())
	default:
		return nil
	}

	tracker := budget.New(cfg.DailyBudgetUSD, cfg.MonthlyBudgetUSD)
	return s2.New(provider, router, tracker)
}

// buildUniversalProvider resolves one of brain.UniversalProvider's preset
// configs by name, overriding BaseURL/Model when the caller supplied
// them. "custom" requires an explicit BaseURL since there is no preset to
// fall back to.
func buildUniversalProvider(cfg Config) *brain.UniversalProvider {
	var pc brain.ProviderConfig
	switch cfg.Provider {
	case "ollama":
		pc = brain.OllamaConfig(cfg.Model)
	case "lmstudio":
		pc = brain.LMStudioConfig(cfg.Model)
	case "openrouter":
		if cfg.APIKey == "" {
			return nil
		}
		pc = brain.OpenRouterConfig(cfg.APIKey)
	case "groq":
		if cfg.APIKey == "" {
			return nil
		}
		pc = brain.GroqConfig(cfg.APIKey)
	case "together":
		if cfg.APIKey == "" {
			return nil
		}
		pc = brain.TogetherConfig(cfg.APIKey)
	case "custom":
		if cfg.BaseURL == "" {
			return nil
		}
		pc = brain.CustomConfig("custom", cfg.BaseURL, cfg.APIKey, cfg.Model)
	default:
		return nil
	}
	if cfg.BaseURL != "" {
		pc.BaseURL = cfg.BaseURL
	}
	if cfg.Model != "" {
		pc.DefaultModel = cfg.Model
		if len(pc.Models) == 0 {
			pc.Models = []brain.ModelConfig{{ID: cfg.Model, Tier: "mid"}}
		}
	}
	return brain.NewUniversalProvider(pc)
}
