package orchestrator

import (
	"context"

	"github.com/cedendahlkim/cascade-core/internal/mutation"
	"github.com/cedendahlkim/cascade-core/internal/observability"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

// maxMutationAttempts bounds how many times GenerateDebugChallenge asks
// the Mutation Engine for a broken variant before giving up: the engine
// picks a mutation kind at random each call (chaos_monkey.py's
// shuffle-and-try), so one trivial mutation doesn't mean every kind is
// trivial for this task's tests.
const maxMutationAttempts = 5

// GenerateDebugChallenge turns a solved Outcome into a "find and fix the
// bug" Task, per spec.md §4.7 and the round-trip property in §8.5: it
// repeatedly asks the Mutation Engine to mutate outcome.Source and
// confirm, via the same Evaluation Engine the orchestrator already uses,
// that the mutation actually lowers the score. Returns ok=false when no
// Mutation Engine is configured, the outcome has no source, or every
// attempt came back trivial or inapplicable.
func (o *Orchestrator) GenerateDebugChallenge(ctx context.Context, t *task.Task, outcome *Outcome) (*mutation.ChaosTask, bool) {
	if o.deps.Mutation == nil || o.deps.Eval == nil || outcome == nil || outcome.Source == "" {
		return nil, false
	}

	for attempt := 0; attempt < maxMutationAttempts; attempt++ {
		chaos, ok := o.deps.Mutation.CreateChaosTask(ctx, o.deps.Eval, t, outcome.Source)
		if !ok {
			if o.deps.Metrics != nil {
				o.deps.Metrics.Record(observability.MetricMutation, 0, observability.Labels{"task_id": t.ID})
			}
			continue
		}
		if o.deps.Logger != nil {
			o.deps.Logger.MutationEvent(t.ID, chaos.MutationType, true)
		}
		if o.deps.Metrics != nil {
			o.deps.Metrics.Record(observability.MetricMutation, 1, observability.Labels{"kind": chaos.MutationType})
		}
		return chaos, true
	}
	return nil, false
}

// GenerateRefactorChallenge wraps the Mutation Engine's refactor-challenge
// mode (spec.md §4.7's "Refactor challenge mode"): given an
// already-correct outcome, it asks for a same-tests,
// different-implementation-constraint task. Returns ok=false when no
// Mutation Engine is configured or the source has no refactor
// opportunity the engine recognizes.
func (o *Orchestrator) GenerateRefactorChallenge(t *task.Task, outcome *Outcome) (*mutation.RefactorTask, bool) {
	if o.deps.Mutation == nil || outcome == nil || outcome.Source == "" {
		return nil, false
	}
	challenge, ok := o.deps.Mutation.GenerateRefactorChallenge(t, outcome.Source)
	if !ok {
		return nil, false
	}
	o.logStage(t.ID, "refactor challenge generated", "kind", challenge.ChallengeType)
	return challenge, true
}
