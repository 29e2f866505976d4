// Package eval implements the Evaluation Engine: drives a Task's test
// cases against a Candidate artifact and computes a 0..1 score with
// human-readable feedback. Grounded on programming_env.py's
// evaluate_solution (IO-task path) and terminal_env.py's
// evaluate_terminal_task (State-task path).
package eval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cedendahlkim/cascade-core/internal/sandbox"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

// Detail is one per-test-case outcome record.
type Detail struct {
	Description string
	Actual      string
	Expected    string
	Passed      bool
	TimedOut    bool
	Error       string
}

// Result is the Evaluation Engine's output: spec.md §3's EvalResult.
type Result struct {
	TaskID    string
	Score     float64
	Passed    int
	Total     int
	Details   []Detail
	ElapsedMs int64
	Feedback  string

	// State-task only: the ordered list of commands actually executed.
	Commands []sandbox.BashResult
}

// Engine evaluates candidates against tasks using a sandbox.Runner.
type Engine struct {
	runner *sandbox.Runner
}

// New creates an Evaluation Engine bound to the given sandbox runner.
func New(runner *sandbox.Runner) *Engine {
	return &Engine{runner: runner}
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}

// Evaluate dispatches to the IO-task or State-task algorithm by the
// task's declared Kind.
func (e *Engine) Evaluate(ctx context.Context, t *task.Task, c task.Candidate) (*Result, error) {
	switch t.Kind {
	case task.KindIO:
		return e.evaluateIO(ctx, t, c)
	case task.KindState:
		return e.evaluateState(ctx, t, c)
	default:
		return nil, fmt.Errorf("eval: unknown task kind %v", t.Kind)
	}
}

func (e *Engine) evaluateIO(ctx context.Context, t *task.Task, c task.Candidate) (*Result, error) {
	res := &Result{TaskID: t.ID, Total: len(t.TestCases)}

	var firstFailure *Detail
	start := time.Now()
	for _, tc := range t.TestCases {
		runRes, err := e.runner.RunProgram(ctx, c.Source, tc.Input, 0)
		detail := Detail{Description: tc.Description, Expected: normalize(tc.Expected)}

		if err != nil {
			detail.Error = err.Error()
			res.Details = append(res.Details, detail)
			if firstFailure == nil {
				firstFailure = &detail
			}
			continue
		}
		res.ElapsedMs += runRes.ElapsedMs

		switch {
		case runRes.TimedOut:
			detail.TimedOut = true
			detail.Error = "time limit exceeded"
		case runRes.ExitCode != 0 && runRes.Stderr != "":
			detail.Error = "runtime error: " + strings.TrimSpace(runRes.Stderr)
		default:
			detail.Actual = normalize(runRes.Stdout)
			detail.Passed = detail.Actual == detail.Expected
		}

		if detail.Passed {
			res.Passed++
		} else if firstFailure == nil {
			d := detail
			firstFailure = &d
		}
		res.Details = append(res.Details, detail)
	}
	_ = start

	res.Score = score(res.Passed, res.Total)
	res.Feedback = feedback(res.Score, res.Passed, res.Total, firstFailure, res.ElapsedMs)
	return res, nil
}

func (e *Engine) evaluateState(ctx context.Context, t *task.Task, c task.Candidate) (*Result, error) {
	ws, err := e.runner.OpenWorkspace()
	if err != nil {
		return nil, fmt.Errorf("eval: open workspace: %w", err)
	}
	defer ws.Close()

	for _, setup := range t.SetupCommands {
		_, _ = ws.Execute(ctx, setup, 0, false)
	}

	maxSteps := t.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 15
	}
	budget := t.TimeLimitS
	if budget <= 0 {
		budget = 60
	}
	deadline := time.Now().Add(time.Duration(budget * float64(time.Second)))

	commands := splitCommands(c.Source)
	for i, cmd := range commands {
		if i >= maxSteps || time.Now().After(deadline) {
			break
		}
		_, _ = ws.Execute(ctx, cmd, 0, true)
	}

	res := &Result{TaskID: t.ID, Total: len(t.StateAssertions), Commands: ws.History, ElapsedMs: ws.TotalMs}

	var firstFailure *Detail
	for _, assertion := range t.StateAssertions {
		detail := e.checkAssertion(ctx, ws, assertion)
		if detail.Passed {
			res.Passed++
		} else if firstFailure == nil {
			d := detail
			firstFailure = &d
		}
		res.Details = append(res.Details, detail)
	}

	res.Score = score(res.Passed, res.Total)
	res.Feedback = feedback(res.Score, res.Passed, res.Total, firstFailure, res.ElapsedMs)
	return res, nil
}

func splitCommands(source string) []string {
	var out []string
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func score(passed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(passed) / float64(total)
}

func feedback(s float64, passed, total int, first *Detail, elapsedMs int64) string {
	if s >= 1.0 {
		return fmt.Sprintf("all %d test cases passed in %s ms", total, humanize.Comma(elapsedMs))
	}
	if first == nil {
		return fmt.Sprintf("%d/%d passed", passed, total)
	}
	switch {
	case first.TimedOut:
		return fmt.Sprintf("%d/%d passed; time limit exceeded on %q", passed, total, first.Description)
	case first.Error != "":
		return fmt.Sprintf("%d/%d passed; %s", passed, total, first.Error)
	default:
		return fmt.Sprintf("%d/%d passed; expected %q got %q", passed, total, first.Expected, first.Actual)
	}
}
