package mutation

import (
	"context"
	"fmt"

	"github.com/cedendahlkim/cascade-core/internal/eval"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

// ChaosTask pairs a known-correct solution with a deliberately broken
// variant and the debugging challenge built from it, per
// chaos_monkey.py's ChaosTask dataclass.
type ChaosTask struct {
	OriginalTask        *task.Task
	CorrectCode         string
	BrokenCode          string
	MutationType        string
	MutationDescription string
	DebugTask           *task.Task
}

// CreateChaosTask mutates correctCode and verifies the mutation actually
// breaks it against t's own tests before handing back a debugging
// challenge, per chaos_monkey.py's create_chaos_task. Returns ok=false if
// no mutation applied, or if the mutated code still scores a perfect 1.0
// (a trivial mutation that changed nothing observable).
func (e *Engine) CreateChaosTask(ctx context.Context, evalEngine *eval.Engine, t *task.Task, correctCode string) (*ChaosTask, bool) {
	broken, kind, desc, ok := e.MutateSolution(correctCode)
	if !ok {
		return nil, false
	}

	result, err := evalEngine.Evaluate(ctx, t, task.Candidate{Source: broken, Tier: task.TierNone})
	if err != nil || result.Score >= 1.0 {
		return nil, false
	}

	debugTask := &task.Task{
		ID:          fmt.Sprintf("chaos-%s-%s", kind, t.ID),
		Title:       "Fix the bug: " + t.Title,
		Description: buildDebugDescription(t, broken),
		Difficulty:  t.Difficulty,
		Category:    "chaos_" + t.Category,
		Kind:        t.Kind,
		TestCases:   t.TestCases,
		Hints:       []string{"The bug is of type: " + humanizeMutationType(kind)},
		Tags:        append([]string{"chaos_monkey", "debugging", kind}, t.Tags...),
	}

	return &ChaosTask{
		OriginalTask:        t,
		CorrectCode:         correctCode,
		BrokenCode:          broken,
		MutationType:        kind,
		MutationDescription: desc,
		DebugTask:           debugTask,
	}, true
}

func buildDebugDescription(t *task.Task, broken string) string {
	return "The following code is meant to solve: " + t.Description +
		"\n\nBut the code has a bug. Identify and fix it.\n\nBuggy code:\n```\n" + broken + "\n```\n\n" +
		"Write the corrected code."
}

func humanizeMutationType(kind string) string {
	out := make([]byte, 0, len(kind))
	for i := 0; i < len(kind); i++ {
		if kind[i] == '_' {
			out = append(out, ' ')
		} else {
			out = append(out, kind[i])
		}
	}
	return string(out)
}
