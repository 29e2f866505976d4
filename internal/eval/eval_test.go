package eval

import (
	"context"
	"testing"

	"github.com/cedendahlkim/cascade-core/internal/sandbox"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

func TestEvaluateIOPerfectScore(t *testing.T) {
	runner := sandbox.New(sandbox.DefaultConfig())
	e := New(runner)

	tk := &task.Task{
		ID: "echo-task", Category: "algorithms", Kind: task.KindIO, Difficulty: 1,
		TestCases: []task.TestCase{
			{Input: "3\n", Expected: "3"},
			{Input: "9\n", Expected: "9"},
		},
	}
	cand := task.Candidate{Source: "print(input())", Tier: task.TierS0}

	res, err := e.Evaluate(context.Background(), tk, cand)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Score != 1.0 {
		t.Errorf("expected score 1.0, got %v (%s)", res.Score, res.Feedback)
	}
	if res.Passed != 2 || res.Total != 2 {
		t.Errorf("expected 2/2, got %d/%d", res.Passed, res.Total)
	}
}

func TestEvaluateIOMismatch(t *testing.T) {
	runner := sandbox.New(sandbox.DefaultConfig())
	e := New(runner)

	tk := &task.Task{
		ID: "wrong", Category: "algorithms", Kind: task.KindIO, Difficulty: 1,
		TestCases: []task.TestCase{{Input: "", Expected: "42"}},
	}
	cand := task.Candidate{Source: "print(1)", Tier: task.TierS2}

	res, err := e.Evaluate(context.Background(), tk, cand)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("expected score 0, got %v", res.Score)
	}
}

func TestEvaluateStateTask(t *testing.T) {
	runner := sandbox.New(sandbox.DefaultConfig())
	e := New(runner)

	tk := &task.Task{
		ID: "make-file", Category: "filesystem", Kind: task.KindState, Difficulty: 1,
		StateAssertions: []task.StateAssertion{
			{Check: task.CheckFileExists, Target: "report.txt"},
			{Check: task.CheckFileLineCount, Target: "report.txt", Expected: "3"},
			{Check: task.CheckFileMatchesRegex, Target: "report.txt", Expected: "^item 1$"},
		},
	}
	cand := task.Candidate{Source: "printf 'item 1\\nitem 2\\nitem 3\\n' > report.txt", Tier: task.TierS0}

	res, err := e.Evaluate(context.Background(), tk, cand)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Score != 1.0 {
		t.Errorf("expected score 1.0, got %v details=%+v", res.Score, res.Details)
	}
}

func TestLineCount(t *testing.T) {
	if n := lineCount("a\nb\n\nc\n"); n != 3 {
		t.Errorf("expected 3 non-empty lines, got %d", n)
	}
	if n := lineCount(""); n != 0 {
		t.Errorf("expected 0 lines for empty content, got %d", n)
	}
}
