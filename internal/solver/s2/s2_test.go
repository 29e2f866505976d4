package s2

import (
	"context"
	"strings"
	"testing"

	"github.com/cedendahlkim/cascade-core/internal/brain"
	"github.com/cedendahlkim/cascade-core/internal/budget"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

type fakeProvider struct {
	response string
	cost     float64
	err      error
	lastReq  brain.LLMRequest
}

func (f *fakeProvider) Complete(ctx context.Context, req brain.LLMRequest) (*brain.LLMResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &brain.LLMResponse{Content: f.response, CostUSD: f.cost, Model: req.Model}, nil
}

func (f *fakeProvider) Name() string     { return "fake" }
func (f *fakeProvider) Models() []string { return []string{"fake-model"} }

func TestSynthesizeExtractsCodeBlock(t *testing.T) {
	fp := &fakeProvider{response: "CODE_START\nprint('hi')\nCODE_END", cost: 0.01}
	c := New(fp, nil, budget.New(0, 0))

	tk := &task.Task{ID: "t1", Title: "greet", Description: "print hi", Kind: task.KindIO, Difficulty: 2}
	attempt, ok := c.Synthesize(context.Background(), tk, nil)
	if !ok {
		t.Fatalf("expected ok")
	}
	if attempt.Source != "print('hi')" {
		t.Errorf("unexpected source: %q", attempt.Source)
	}
	if attempt.Model == "" {
		t.Errorf("expected a model to be selected")
	}
}

func TestSynthesizeNoCodeBlockFails(t *testing.T) {
	fp := &fakeProvider{response: "I refuse to answer."}
	c := New(fp, nil, nil)
	tk := &task.Task{ID: "t2", Kind: task.KindIO, Difficulty: 2, Description: "whatever"}
	_, ok := c.Synthesize(context.Background(), tk, nil)
	if ok {
		t.Errorf("expected failure when no CODE_START/CODE_END block present")
	}
}

func TestSynthesizeIncludesHintsInPrompt(t *testing.T) {
	fp := &fakeProvider{response: "CODE_START\nok\nCODE_END"}
	c := New(fp, nil, nil)
	tk := &task.Task{ID: "t3", Kind: task.KindIO, Difficulty: 2, Description: "do something"}
	if _, ok := c.Synthesize(context.Background(), tk, []string{"timed out on case 2"}); !ok {
		t.Fatalf("expected ok")
	}
	found := false
	for _, m := range fp.lastReq.Messages {
		if strings.Contains(m.Content, "timed out on case 2") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected prior failure hint to appear in assembled prompt")
	}
}
