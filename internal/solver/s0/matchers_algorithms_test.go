package s0

import (
	"context"
	"testing"

	"github.com/cedendahlkim/cascade-core/internal/eval"
	"github.com/cedendahlkim/cascade-core/internal/sandbox"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

func evalSource(t *testing.T, tk *task.Task, src string) *eval.Result {
	t.Helper()
	runner := sandbox.New(sandbox.DefaultConfig())
	engine := eval.New(runner)
	res, err := engine.Evaluate(context.Background(), tk, task.Candidate{Source: src, Tier: task.TierS0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return res
}

func TestIORegistryBFSReachability(t *testing.T) {
	tk := &task.Task{
		ID: "bfs-1", Category: "graphs", Kind: task.KindIO, Difficulty: 3,
		Description: "given a graph, determine if the target node is reachable from the source using bfs",
		TestCases: []task.TestCase{
			{Input: "4\n2\n0 1\n1 2\n0 3\n", Expected: "no"},
			{Input: "4\n3\n0 1\n1 2\n2 3\n0 3\n", Expected: "yes"},
		},
	}
	r := NewIORegistry()
	src, name, ok := r.Solve(tk)
	if !ok || name != "bfs_reachability" {
		t.Fatalf("expected bfs_reachability match, got ok=%v name=%s", ok, name)
	}
	if res := evalSource(t, tk, src); res.Score != 1.0 {
		t.Fatalf("expected perfect score, got %v details=%+v", res.Score, res.Details)
	}
}

func TestIORegistryTopoSort(t *testing.T) {
	tk := &task.Task{
		ID: "topo-1", Category: "graphs", Kind: task.KindIO, Difficulty: 4,
		Description: "print a valid topological sort order of the given dag",
		TestCases: []task.TestCase{
			{Input: "4\n3\n0 1\n0 2\n1 3\n", Expected: "0 1 2 3"},
		},
	}
	r := NewIORegistry()
	src, name, ok := r.Solve(tk)
	if !ok || name != "topo_sort" {
		t.Fatalf("expected topo_sort match, got ok=%v name=%s", ok, name)
	}
	if res := evalSource(t, tk, src); res.Score != 1.0 {
		t.Fatalf("expected perfect score, got %v details=%+v", res.Score, res.Details)
	}
}

func TestIORegistryKnapsack(t *testing.T) {
	tk := &task.Task{
		ID: "knapsack-1", Category: "dp", Kind: task.KindIO, Difficulty: 5,
		Description: "solve the 0/1 knapsack problem for the given items and capacity",
		TestCases: []task.TestCase{
			{Input: "3\n1 1\n3 4\n4 5\n7\n", Expected: "9"},
		},
	}
	r := NewIORegistry()
	src, name, ok := r.Solve(tk)
	if !ok || name != "knapsack" {
		t.Fatalf("expected knapsack match, got ok=%v name=%s", ok, name)
	}
	if res := evalSource(t, tk, src); res.Score != 1.0 {
		t.Fatalf("expected perfect score, got %v details=%+v", res.Score, res.Details)
	}
}

func TestIORegistryCoinChange(t *testing.T) {
	tk := &task.Task{
		ID: "coin-1", Category: "dp", Kind: task.KindIO, Difficulty: 4,
		Description: "find the fewest coins needed to make the coin change amount",
		TestCases: []task.TestCase{
			{Input: "3\n1\n2\n5\n11\n", Expected: "3"},
		},
	}
	r := NewIORegistry()
	src, name, ok := r.Solve(tk)
	if !ok || name != "coin_change" {
		t.Fatalf("expected coin_change match, got ok=%v name=%s", ok, name)
	}
	if res := evalSource(t, tk, src); res.Score != 1.0 {
		t.Fatalf("expected perfect score, got %v details=%+v", res.Score, res.Details)
	}
}

func TestIORegistryRPNEvaluation(t *testing.T) {
	tk := &task.Task{
		ID: "rpn-1", Category: "data_structures", Kind: task.KindIO, Difficulty: 3,
		Description: "evaluate the reverse polish notation expression",
		TestCases: []task.TestCase{
			{Input: "2 1 + 3 *\n", Expected: "9"},
		},
	}
	r := NewIORegistry()
	src, name, ok := r.Solve(tk)
	if !ok || name != "rpn_evaluation" {
		t.Fatalf("expected rpn_evaluation match, got ok=%v name=%s", ok, name)
	}
	if res := evalSource(t, tk, src); res.Score != 1.0 {
		t.Fatalf("expected perfect score, got %v details=%+v", res.Score, res.Details)
	}
}

func TestIORegistrySieve(t *testing.T) {
	tk := &task.Task{
		ID: "sieve-1", Category: "number_theory", Kind: task.KindIO, Difficulty: 3,
		Description: "list all primes up to n using the sieve of eratosthenes",
		TestCases: []task.TestCase{
			{Input: "10\n", Expected: "2 3 5 7"},
		},
	}
	r := NewIORegistry()
	src, name, ok := r.Solve(tk)
	if !ok || name != "sieve" {
		t.Fatalf("expected sieve match, got ok=%v name=%s", ok, name)
	}
	if res := evalSource(t, tk, src); res.Score != 1.0 {
		t.Fatalf("expected perfect score, got %v details=%+v", res.Score, res.Details)
	}
}

func TestStateRegistryUniqueWords(t *testing.T) {
	tk := &task.Task{
		ID: "unique-words-1", Category: "filesystem", Kind: task.KindState, Difficulty: 2,
		Description: "write the unique words in notes.txt to a new file",
		MaxSteps:    5, TimeLimitS: 10,
		SetupCommands: []string{"printf 'a b a c\\nb c d\\n' > notes.txt"},
		StateAssertions: []task.StateAssertion{
			{Check: task.CheckFileExists, Target: "unique_words.txt"},
			{Check: task.CheckFileLineCount, Target: "unique_words.txt", Expected: "4"},
		},
	}
	r := NewStateRegistry()
	src, name, ok := r.Solve(tk)
	if !ok || name != "unique_words" {
		t.Fatalf("expected unique_words match, got ok=%v name=%s", ok, name)
	}
	if res := evalSource(t, tk, src); res.Score != 1.0 {
		t.Fatalf("expected perfect score, got %v details=%+v", res.Score, res.Details)
	}
}
