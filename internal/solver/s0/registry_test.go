package s0

import (
	"context"
	"testing"
	"time"

	"github.com/cedendahlkim/cascade-core/internal/eval"
	"github.com/cedendahlkim/cascade-core/internal/sandbox"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

func TestIORegistryTwoSum(t *testing.T) {
	tk := &task.Task{
		ID: "two-sum-1", Category: "algorithms", Kind: task.KindIO, Difficulty: 2,
		Title:       "Two sum",
		Description: "read N, then N integers, then target; print two indices that sum to target or -1",
		TestCases: []task.TestCase{
			{Input: "4\n2\n7\n11\n15\n9\n", Expected: "0 1"},
			{Input: "3\n3\n2\n4\n6\n", Expected: "1 2"},
		},
	}

	r := NewIORegistry()
	src, name, ok := r.Solve(tk)
	if !ok || name != "two_sum" {
		t.Fatalf("expected two_sum match, got ok=%v name=%s", ok, name)
	}

	runner := sandbox.New(sandbox.DefaultConfig())
	engine := eval.New(runner)
	res, err := engine.Evaluate(context.Background(), tk, task.Candidate{Source: src, Tier: task.TierS0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Score != 1.0 {
		t.Fatalf("expected perfect score, got %v details=%+v", res.Score, res.Details)
	}
}

func TestIORegistryBalancedBrackets(t *testing.T) {
	tk := &task.Task{
		ID: "brackets", Category: "data_structures", Kind: task.KindIO, Difficulty: 2,
		Title:       "Balanced brackets",
		Description: "determine whether the brackets in the input are balanced",
		TestCases: []task.TestCase{
			{Input: "()[]{}\n", Expected: "yes"},
			{Input: "([)]\n", Expected: "no"},
			{Input: "(((\n", Expected: "no"},
		},
	}
	r := NewIORegistry()
	src, _, ok := r.Solve(tk)
	if !ok {
		t.Fatalf("expected balanced_brackets match")
	}
	runner := sandbox.New(sandbox.DefaultConfig())
	engine := eval.New(runner)
	res, err := engine.Evaluate(context.Background(), tk, task.Candidate{Source: src, Tier: task.TierS0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Score != 1.0 {
		t.Fatalf("expected perfect score, got %v details=%+v", res.Score, res.Details)
	}
}

func TestIORegistryNoMatch(t *testing.T) {
	tk := &task.Task{
		ID: "mystery", Category: "unknown", Kind: task.KindIO, Difficulty: 5,
		Description: "do something nobody has a matcher for",
		TestCases:   []task.TestCase{{Input: "", Expected: ""}},
	}
	if _, _, ok := NewIORegistry().Solve(tk); ok {
		t.Errorf("expected no matcher to claim an unrecognized task")
	}
}

func TestStateRegistryFileCreate(t *testing.T) {
	tk := &task.Task{
		ID: "make-report", Category: "filesystem", Kind: task.KindState, Difficulty: 1,
		Description: "create file report.txt with 3 lines of the form 'item N'",
		MaxSteps:    5, TimeLimitS: 10,
		StateAssertions: []task.StateAssertion{
			{Check: task.CheckFileExists, Target: "report.txt"},
			{Check: task.CheckFileLineCount, Target: "report.txt", Expected: "3"},
			{Check: task.CheckFileMatchesRegex, Target: "report.txt", Expected: "^item 1$"},
		},
	}
	r := NewStateRegistry()
	src, name, ok := r.Solve(tk)
	if !ok || name != "file_create" {
		t.Fatalf("expected file_create match, got ok=%v name=%s src=%q", ok, name, src)
	}

	runner := sandbox.New(sandbox.DefaultConfig())
	engine := eval.New(runner)
	res, err := engine.Evaluate(context.Background(), tk, task.Candidate{Source: src, Tier: task.TierS0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Score != 1.0 {
		t.Fatalf("expected perfect score, got %v details=%+v", res.Score, res.Details)
	}
	_ = time.Second
}
