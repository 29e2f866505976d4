// Package s2 implements the External Synthesis Client: the last-resort
// tier that asks an LLM to write candidate source for a task it has never
// solved before. Adapted from instruments/generator.go's Generate, wiring
// the same brain.LLMProvider/ModelRouter/ContextAssembler stack, but
// reshaped around this core's Task/Candidate types and a single bounded
// synthesis call per invocation — the orchestrator owns retries.
package s2

import (
	"context"
	"fmt"
	"strings"

	"github.com/cedendahlkim/cascade-core/internal/brain"
	"github.com/cedendahlkim/cascade-core/internal/budget"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

// Client synthesizes candidate source for a task via an LLM, tracking cost
// against a shared budget.Tracker the way instruments/generator.go tracks
// resp.CostUSD, but persisted across calls instead of discarded per-call.
type Client struct {
	llm     brain.LLMProvider
	router  *brain.ModelRouter
	ctx     *brain.ContextAssembler
	tracker *budget.Tracker
}

// New builds a synthesis client around an LLM provider. tracker may be nil,
// in which case spend is neither recorded nor enforced.
func New(llm brain.LLMProvider, router *brain.ModelRouter, tracker *budget.Tracker) *Client {
	if router == nil {
		router = brain.NewModelRouter()
	}
	return &Client{
		llm:     llm,
		router:  router,
		ctx:     brain.NewContextAssembler(),
		tracker: tracker,
	}
}

// Attempt is a single synthesis call's outcome, returned alongside the
// bool so the orchestrator can log cost/latency without re-deriving it.
type Attempt struct {
	Source    string
	CostUSD   float64
	LatencyMs int64
	Model     string
}

// Synthesize asks the configured LLM for one candidate solving t, given
// hints — prior failure feedback from earlier attempts within the same
// orchestrator retry loop (spec.md's bounded-retry contract lives in the
// orchestrator, not here; this is one shot). Returns ok=false if the LLM
// call failed outright or the response contained no extractable code
// block, mirroring generator.go's "no code block found" handling.
func (c *Client) Synthesize(ctx context.Context, t *task.Task, hints []string) (*Attempt, bool) {
	if c.tracker != nil && !c.tracker.CanSpend(0) {
		return nil, false
	}

	prompt := buildPrompt(t, hints)
	messages := c.ctx.Assemble(brain.ContextLayers{
		SystemPrompt:    systemPrompt(t),
		TaskDescription: prompt,
	})

	budgetRemaining := 1000.0
	if c.tracker != nil {
		budgetRemaining = c.tracker.EffectiveBudget()
	}
	complexity := complexityOf(t)
	model := c.router.Select(complexity, budgetRemaining)

	resp, err := c.llm.Complete(ctx, brain.LLMRequest{
		Messages:  messages,
		Model:     model,
		MaxTokens: 2048,
	})
	if err != nil {
		return nil, false
	}
	if c.tracker != nil {
		c.tracker.Record(t.ID, resp.CostUSD)
	}

	code := extractBlock(resp.Content, "CODE_START", "CODE_END")
	if code == "" {
		return &Attempt{CostUSD: resp.CostUSD, LatencyMs: resp.LatencyMs, Model: model}, false
	}
	return &Attempt{Source: code, CostUSD: resp.CostUSD, LatencyMs: resp.LatencyMs, Model: model}, true
}

// complexityOf maps a task's declared difficulty onto the router's three
// named complexity buckets.
func complexityOf(t *task.Task) string {
	switch {
	case t.Difficulty <= 3:
		return "simple"
	case t.Difficulty <= 7:
		return "moderate"
	default:
		return "complex"
	}
}

func systemPrompt(t *task.Task) string {
	lang := "python3"
	kind := "a stdin/stdout program"
	if t.Kind == task.KindState {
		kind = "a sequence of shell commands"
	}
	return fmt.Sprintf("You are a program-synthesis engine. Write %s that solves the given task exactly. "+
		"Target language: %s. Be precise about edge cases; the candidate will be graded against hidden tests.", kind, lang)
}

func buildPrompt(t *task.Task, hints []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n\n%s\n", t.Title, t.Description)

	if t.Kind == task.KindIO {
		for i, tc := range t.TestCases {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "\nExample input:\n%s\nExample output:\n%s\n", tc.Input, tc.Expected)
		}
	} else {
		b.WriteString("\nThe solution must satisfy these checks against the working directory:\n")
		for _, a := range t.StateAssertions {
			fmt.Fprintf(&b, "- %s %s (expected %q)\n", a.Check, a.Target, a.Expected)
		}
	}

	if len(hints) > 0 {
		b.WriteString("\nPrevious attempts failed. Feedback from the grader:\n")
		for _, h := range hints {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}

	if t.Kind == task.KindIO {
		b.WriteString("\nRespond in EXACTLY this format (no markdown fences):\n\nCODE_START\n<python3 program reading stdin and writing stdout>\nCODE_END")
	} else {
		b.WriteString("\nRespond in EXACTLY this format (no markdown fences):\n\nCODE_START\n<newline-separated shell commands to run in the working directory>\nCODE_END")
	}

	return b.String()
}

// extractBlock extracts text between start/end markers, identical to
// generator.go's helper of the same name.
func extractBlock(text, startMarker, endMarker string) string {
	startIdx := strings.Index(text, startMarker)
	if startIdx < 0 {
		return ""
	}
	startIdx += len(startMarker)

	endIdx := strings.Index(text[startIdx:], endMarker)
	if endIdx < 0 {
		return ""
	}
	return strings.TrimSpace(text[startIdx : startIdx+endIdx])
}
