package orchestrator

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cedendahlkim/cascade-core/internal/brain"
	"github.com/cedendahlkim/cascade-core/internal/eval"
	"github.com/cedendahlkim/cascade-core/internal/promotion"
	"github.com/cedendahlkim/cascade-core/internal/sandbox"
	"github.com/cedendahlkim/cascade-core/internal/solver/s0"
	"github.com/cedendahlkim/cascade-core/internal/solver/s2"
	"github.com/cedendahlkim/cascade-core/internal/storage"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

func newTestDeps() (Dependencies, *eval.Engine) {
	runner := sandbox.New(sandbox.DefaultConfig())
	evalEngine := eval.New(runner)
	return Dependencies{
		Sandbox:   runner,
		Eval:      evalEngine,
		S0IO:      s0.NewIORegistry(),
		S0State:   s0.NewStateRegistry(),
		Promotion: promotion.New(),
	}, evalEngine
}

func twoSumTask() *task.Task {
	return &task.Task{
		ID: "ts-1", Category: "algorithms", Kind: task.KindIO, Difficulty: 2,
		Title:       "Two sum",
		Description: "read N, then N integers, then target; print two indices that sum to target",
		TestCases: []task.TestCase{
			{Input: "4\n2\n7\n11\n15\n9\n", Expected: "0 1"},
		},
	}
}

func TestSolveHitsS0(t *testing.T) {
	deps, _ := newTestDeps()
	o := New(deps)

	outcome, err := o.Solve(context.Background(), twoSumTask())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if outcome.Tier != "s0" {
		t.Fatalf("expected s0 tier, got %q", outcome.Tier)
	}
}

func TestSolveFallsThroughToS2WhenNoMatcherAndNoPromotion(t *testing.T) {
	deps, _ := newTestDeps()

	fp := &fakeProvider{response: "CODE_START\nprint(len(input()))\nCODE_END"}
	deps.S2 = s2.New(fp, nil, nil)
	o := New(deps)

	tk := &task.Task{
		ID: "mystery", Category: "unknown", Kind: task.KindIO, Difficulty: 5,
		Description: "count the characters typed on one line",
		TestCases:   []task.TestCase{{Input: "hi\n", Expected: "2"}},
	}
	outcome, err := o.Solve(context.Background(), tk)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if outcome.Tier != "s2" {
		t.Fatalf("expected s2 tier, got %q result=%+v", outcome.Tier, outcome.Result)
	}
	if outcome.PromotionEvent != nil {
		t.Errorf("expected no promotion event on the first s2 success, got %+v", outcome.PromotionEvent)
	}
}

func TestSolvePromotesAfterThreeS2Successes(t *testing.T) {
	deps, _ := newTestDeps()
	fp := &fakeProvider{response: "CODE_START\nprint(int(input())+int(input()))\nCODE_END"}
	deps.S2 = s2.New(fp, nil, nil)
	o := New(deps)

	tk := &task.Task{
		ID: "addn", Category: "unmatched_arith", Kind: task.KindIO, Difficulty: 3,
		Description: "read two integers on separate lines, print their total",
		TestCases:   []task.TestCase{{Input: "2\n3\n", Expected: "5"}},
	}

	var lastOutcome *Outcome
	for i := 0; i < 3; i++ {
		outcome, err := o.Solve(context.Background(), tk)
		if err != nil {
			t.Fatalf("Solve iteration %d: %v", i, err)
		}
		lastOutcome = outcome
	}
	if lastOutcome.PromotionEvent == nil || lastOutcome.PromotionEvent.To != "s1" {
		t.Fatalf("expected the 3rd success to cross the s2->s1 threshold, got %+v", lastOutcome.PromotionEvent)
	}

	// A 4th call should now resolve directly off the freshly-promoted S1 entry.
	fourth, err := o.Solve(context.Background(), tk)
	if err != nil {
		t.Fatalf("Solve 4th call: %v", err)
	}
	if fourth.Tier != "s1" {
		t.Fatalf("expected the 4th call to resolve via s1, got %q", fourth.Tier)
	}
}

func TestSolveUnsolvedWhenS2NeverProducesCode(t *testing.T) {
	deps, _ := newTestDeps()
	fp := &fakeProvider{response: "I cannot help with that."}
	deps.S2 = s2.New(fp, nil, nil)
	deps.MaxS2Retries = 2
	o := New(deps)

	tk := &task.Task{
		ID: "impossible", Category: "unmatched", Kind: task.KindIO, Difficulty: 9,
		Description: "do something no matcher or LLM stub will ever answer",
		TestCases:   []task.TestCase{{Input: "", Expected: "42"}},
	}
	outcome, err := o.Solve(context.Background(), tk)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if outcome.Tier != "" {
		t.Fatalf("expected an unsolved outcome, got tier %q", outcome.Tier)
	}
	if outcome.Attempts != 2 {
		t.Errorf("expected exactly MaxS2Retries attempts, got %d", outcome.Attempts)
	}
}

func TestSolvePersistsOutcomeRecord(t *testing.T) {
	deps, _ := newTestDeps()
	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	deps.OutcomeStore = store
	o := New(deps)

	outcome, err := o.Solve(context.Background(), twoSumTask())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	ctx := context.Background()
	keys, err := store.List(ctx, "outcome:"+outcome.TaskID, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected exactly one persisted outcome record, got %d", len(keys))
	}

	rec, err := store.Get(ctx, keys[0])
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var decoded outcomeRecord
	if err := json.Unmarshal(rec.Value, &decoded); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if decoded.Tier != "s0" || decoded.Score != 1.0 {
		t.Errorf("unexpected persisted record: %+v", decoded)
	}
}

type fakeProvider struct {
	response string
}

func (f *fakeProvider) Complete(ctx context.Context, req brain.LLMRequest) (*brain.LLMResponse, error) {
	return &brain.LLMResponse{Content: f.response, Model: req.Model}, nil
}

func (f *fakeProvider) Name() string     { return "fake" }
func (f *fakeProvider) Models() []string { return []string{"fake-model"} }
