package orchestrator

import (
	"context"
	"testing"

	"github.com/cedendahlkim/cascade-core/internal/mutation"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

const sumSolutionCode = `n = int(input())
nums = [int(input()) for _ in range(n)]
total = 0
for v in nums:
    total += v
print(total)
`

func sumTask() *task.Task {
	return &task.Task{
		ID: "sum-1", Category: "arithmetic", Kind: task.KindIO, Difficulty: 2,
		Title:       "Sum of numbers",
		Description: "read N then N integers, print their sum",
		TestCases: []task.TestCase{
			{Input: "3\n1\n2\n3\n", Expected: "6"},
			{Input: "2\n10\n10\n", Expected: "20"},
		},
	}
}

func TestGenerateDebugChallengeWiresMutationEngine(t *testing.T) {
	deps, _ := newTestDeps()
	deps.Mutation = mutation.New()
	o := New(deps)

	tk := sumTask()
	outcome := &Outcome{TaskID: tk.ID, Tier: "s0", Source: sumSolutionCode}

	var chaos *mutation.ChaosTask
	var ok bool
	for i := 0; i < 20 && !ok; i++ {
		chaos, ok = o.GenerateDebugChallenge(context.Background(), tk, outcome)
	}
	if !ok {
		t.Fatalf("expected at least one mutation across 20 attempts to verifiably break the solution")
	}
	if chaos.DebugTask == nil || chaos.DebugTask.Category != "chaos_arithmetic" {
		t.Errorf("expected a debug task under the chaos_ category, got %+v", chaos.DebugTask)
	}
}

func TestGenerateDebugChallengeNoMutationEngine(t *testing.T) {
	deps, _ := newTestDeps()
	o := New(deps)
	tk := sumTask()
	outcome := &Outcome{TaskID: tk.ID, Tier: "s0", Source: sumSolutionCode}

	if _, ok := o.GenerateDebugChallenge(context.Background(), tk, outcome); ok {
		t.Errorf("expected no debug challenge without a configured Mutation Engine")
	}
}

func TestGenerateRefactorChallengeWiresMutationEngine(t *testing.T) {
	deps, _ := newTestDeps()
	deps.Mutation = mutation.New()
	o := New(deps)

	tk := sumTask()
	// Enough lines and a nested-loop marker to guarantee at least one
	// refactor heuristic fires.
	longCode := "for i in range(3):\n    for j in range(3):\n        x = i + j\n"
	outcome := &Outcome{TaskID: tk.ID, Tier: "s0", Source: longCode}

	rt, ok := o.GenerateRefactorChallenge(tk, outcome)
	if !ok {
		t.Fatalf("expected a refactor challenge for nested-loop code")
	}
	if rt.Task.Category != "refactor_arithmetic" {
		t.Errorf("unexpected category %q", rt.Task.Category)
	}
}

func TestGenerateRefactorChallengeNoMutationEngine(t *testing.T) {
	deps, _ := newTestDeps()
	o := New(deps)
	tk := sumTask()
	outcome := &Outcome{TaskID: tk.ID, Tier: "s0", Source: sumSolutionCode}

	if _, ok := o.GenerateRefactorChallenge(tk, outcome); ok {
		t.Errorf("expected no refactor challenge without a configured Mutation Engine")
	}
}
