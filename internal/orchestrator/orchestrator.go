// Package orchestrator implements the Solver Orchestrator (C8): the
// single entry point that, given a task, consults the tiers in strict
// order (S0 registry, promoted-S0 template, S1 cache, ResponseCache, S2
// synthesis with bounded retries), evaluates each candidate, and feeds
// outcomes back into the Promotion Pipeline. Grounded on
// internal/pipeline/pipeline.go's nil-safe Dependencies-struct idiom and
// staged Run method, trimmed to the fields this core actually needs.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cedendahlkim/cascade-core/internal/eval"
	"github.com/cedendahlkim/cascade-core/internal/mutation"
	"github.com/cedendahlkim/cascade-core/internal/observability"
	"github.com/cedendahlkim/cascade-core/internal/promotion"
	"github.com/cedendahlkim/cascade-core/internal/sandbox"
	"github.com/cedendahlkim/cascade-core/internal/solver/s0"
	"github.com/cedendahlkim/cascade-core/internal/solver/s2"
	"github.com/cedendahlkim/cascade-core/internal/storage"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

// DefaultMaxS2Retries bounds how many synthesis attempts the orchestrator
// makes before giving up on a task, per spec.md §4.8's bounded-retry
// contract (the retry loop itself lives here, not in internal/solver/s2).
const DefaultMaxS2Retries = 3

// Dependencies holds every subsystem the orchestrator needs. S2, Mutation,
// Logger, and Metrics are optional — nil-safe, following
// internal/pipeline/pipeline.go's Dependencies convention.
type Dependencies struct {
	Sandbox   *sandbox.Runner
	Eval      *eval.Engine
	S0IO      *s0.Registry
	S0State   *s0.Registry
	Promotion *promotion.Pipeline

	S2           *s2.Client
	MaxS2Retries int
	Mutation     *mutation.Engine
	Logger       *observability.Logger
	Metrics      *observability.MetricsCollector

	// OutcomeStore, when set, receives one Record per completed Solve
	// call — the §6 "Result emission interface" — in addition to the
	// mandated flat-file PromotionState/promotions.log the Promotion
	// Pipeline already writes. Optional; a storage failure here is
	// logged and otherwise ignored, never surfaced as a Solve error.
	OutcomeStore storage.Store
}

// Orchestrator is the stateless coordinator built from Dependencies; all
// mutable state lives in the Dependencies' own subsystems.
type Orchestrator struct {
	deps Dependencies
}

// New builds an Orchestrator, defaulting MaxS2Retries when unset.
func New(deps Dependencies) *Orchestrator {
	if deps.MaxS2Retries <= 0 {
		deps.MaxS2Retries = DefaultMaxS2Retries
	}
	return &Orchestrator{deps: deps}
}

// Outcome reports which tier (if any) solved a task.
type Outcome struct {
	TaskID         string
	Tier           string // "s0", "s1", "s2", "s2-cache", or "" if unsolved
	Source         string
	Result         *eval.Result
	Attempts       int
	PromotionEvent *promotion.PromotionEvent
}

// Solve runs the full tiered cascade for t and returns the outcome.
// Returns an error for a task that fails Validate or for an infrastructure
// failure (e.g. the sandbox itself erroring); an unsolved task is a normal
// Outcome with Tier == "".
// When an OutcomeStore is configured, every terminal outcome (solved or
// not) is additionally persisted as a Record, satisfying spec.md §6's
// "Result emission interface" for external metrics queries.
func (o *Orchestrator) Solve(ctx context.Context, t *task.Task) (*Outcome, error) {
	if o.deps.Metrics != nil {
		o.deps.Metrics.Record(observability.MetricRuns, 1, observability.Labels{"category": t.Category})
	}
	outcome, err := o.solve(ctx, t)
	if outcome != nil {
		o.persistOutcome(ctx, outcome)
	}
	return outcome, err
}

func (o *Orchestrator) solve(ctx context.Context, t *task.Task) (*Outcome, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	registry := o.deps.S0IO
	if t.Kind == task.KindState {
		registry = o.deps.S0State
	}

	// Tier 1: deterministic pattern registry.
	if registry != nil {
		if src, matcherName, ok := registry.Solve(t); ok {
			result, err := o.deps.Eval.Evaluate(ctx, t, task.Candidate{Source: src, Tier: task.TierS0})
			if err != nil {
				return nil, fmt.Errorf("evaluate s0 candidate: %w", err)
			}
			o.logStage(t.ID, "s0 match", "matcher", matcherName, "score", result.Score)
			if result.Score >= 1.0 {
				o.recordTier(t.ID, "s0", result.Score)
				return &Outcome{TaskID: t.ID, Tier: "s0", Source: src, Result: result, Attempts: 1}, nil
			}
			// A matched-but-failing deterministic pattern is a bug in the
			// matcher itself; fall through rather than trust it.
			o.logStage(t.ID, "s0 matched but failed evaluation", "matcher", matcherName)
		}
	}

	// Tier 2: a previously-promoted S0 template (shadowed S1 entry still
	// present per DESIGN.md's Open Question (a), but S0Lookup wins first).
	if o.deps.Promotion != nil {
		if src, ok := o.deps.Promotion.S0Lookup(t.Category, t.Description); ok {
			if outcome, ok := o.tryPromoted(ctx, t, src, "s0", "s0"); ok {
				return outcome, nil
			}
		}

		// Tier 3: the S1 strategy cache.
		if src, ok := o.deps.Promotion.S1Lookup(t.Category, t.Description); ok {
			if outcome, ok := o.tryPromoted(ctx, t, src, "s1", "s1"); ok {
				return outcome, nil
			}
		}

		// Tier 4: the ephemeral ResponseCache (a prior S2 response for
		// this exact signature within its TTL). A hit here is still an s2
		// artifact for promotion-counting purposes, so it's reported to
		// the Promotion Pipeline as another "s2" success/failure even
		// though the displayed tier is "s2-cache".
		if src, ok := o.deps.Promotion.CacheGet(t.Category, t.Description, "s2"); ok {
			if outcome, ok := o.tryPromoted(ctx, t, src, "s2-cache", "s2"); ok {
				return outcome, nil
			}
		}
	}

	// Tier 5: external synthesis, bounded retries, each retry seeded with
	// the previous attempt's failure feedback as a hint.
	if o.deps.S2 == nil {
		return &Outcome{TaskID: t.ID, Tier: ""}, nil
	}
	return o.synthesize(ctx, t)
}

// tryPromoted evaluates a tier-resolved candidate and, on success, records
// it against the Promotion Pipeline and returns a terminal Outcome; on
// failure it records the failure and reports ok=false so the caller falls
// through to the next tier. displayTier is what the Outcome reports;
// promotionTier is what gets recorded against the Promotion Pipeline's
// state machine (these differ only for the ResponseCache hit, which is
// displayed as "s2-cache" but tracked as another "s2" success).
func (o *Orchestrator) tryPromoted(ctx context.Context, t *task.Task, src, displayTier, promotionTier string) (*Outcome, bool) {
	result, err := o.deps.Eval.Evaluate(ctx, t, task.Candidate{Source: src, Tier: task.Tier(displayTier)})
	if err != nil {
		o.logStage(t.ID, "evaluate error", "tier", displayTier, "error", err.Error())
		return nil, false
	}
	o.recordTier(t.ID, displayTier, result.Score)

	if result.Score < 1.0 {
		if promotionTier != "s0" && o.deps.Promotion != nil {
			if err := o.deps.Promotion.RecordFailure(t.Category, t.Description, promotionTier); err != nil {
				o.logStage(t.ID, "promotion state-io error", "error", err.Error())
			}
		}
		return nil, false
	}

	var event *promotion.PromotionEvent
	if promotionTier != "s0" && o.deps.Promotion != nil {
		var err error
		event, err = o.deps.Promotion.RecordSuccess(t.Category, t.Description, src, promotionTier)
		if err != nil {
			o.logStage(t.ID, "promotion state-io error", "error", err.Error())
		}
		if event != nil {
			o.logPromotion(event)
		}
	}
	return &Outcome{TaskID: t.ID, Tier: displayTier, Source: src, Result: result, Attempts: 1, PromotionEvent: event}, true
}

// synthesize runs the bounded S2 retry loop.
func (o *Orchestrator) synthesize(ctx context.Context, t *task.Task) (*Outcome, error) {
	var hints []string
	var last *eval.Result

	for attempt := 1; attempt <= o.deps.MaxS2Retries; attempt++ {
		o.logStage(t.ID, fmt.Sprintf("s2 attempt %d/%d", attempt, o.deps.MaxS2Retries))

		synth, ok := o.deps.S2.Synthesize(ctx, t, hints)
		if synth != nil && o.deps.Metrics != nil {
			o.deps.Metrics.Record(observability.MetricCost, synth.CostUSD, observability.Labels{"task_id": t.ID})
			o.deps.Metrics.Record(observability.MetricLatency, float64(synth.LatencyMs), observability.Labels{"model": synth.Model})
		}
		if !ok {
			hints = append(hints, "the previous response did not contain a usable code block")
			continue
		}

		result, err := o.deps.Eval.Evaluate(ctx, t, task.Candidate{Source: synth.Source, Tier: task.TierS2})
		if err != nil {
			if o.deps.Metrics != nil {
				o.deps.Metrics.Record(observability.MetricErrors, 1, observability.Labels{"stage": "evaluate_s2"})
			}
			return nil, fmt.Errorf("evaluate s2 candidate: %w", err)
		}
		last = result
		o.recordTier(t.ID, "s2", result.Score)

		if result.Score >= 1.0 {
			var event *promotion.PromotionEvent
			if o.deps.Promotion != nil {
				var err error
				event, err = o.deps.Promotion.RecordSuccess(t.Category, t.Description, synth.Source, "s2")
				if err != nil {
					o.logStage(t.ID, "promotion state-io error", "error", err.Error())
				}
				o.deps.Promotion.CachePut(t.Category, t.Description, "s2", synth.Source)
				if event != nil {
					o.logPromotion(event)
				}
			}
			return &Outcome{TaskID: t.ID, Tier: "s2", Source: synth.Source, Result: result, Attempts: attempt, PromotionEvent: event}, nil
		}

		hints = append(hints, result.Feedback)
	}

	if o.deps.Promotion != nil {
		if err := o.deps.Promotion.RecordFailure(t.Category, t.Description, "s2"); err != nil {
			o.logStage(t.ID, "promotion state-io error", "error", err.Error())
		}
	}
	return &Outcome{TaskID: t.ID, Tier: "", Result: last, Attempts: o.deps.MaxS2Retries}, nil
}

func (o *Orchestrator) logStage(taskID, stage string, args ...any) {
	if o.deps.Logger != nil {
		o.deps.Logger.Stage(taskID, stage, args...)
	}
}

func (o *Orchestrator) logPromotion(ev *promotion.PromotionEvent) {
	if o.deps.Logger != nil {
		o.deps.Logger.PromotionEvent(string(ev.Signature), ev.From, ev.To, "successes", ev.SuccessCount)
	}
	if o.deps.Metrics != nil {
		o.deps.Metrics.Record(observability.MetricPromotion, 1, observability.Labels{"from": ev.From, "to": ev.To})
	}
}

func (o *Orchestrator) recordTier(taskID, tier string, score float64) {
	if o.deps.Logger != nil {
		o.deps.Logger.TierEvent(taskID, tier, score)
	}
	if o.deps.Metrics != nil {
		o.deps.Metrics.Record(observability.MetricTierHit, score, observability.Labels{"tier": tier})
		o.deps.Metrics.Record(observability.MetricScore, score, observability.Labels{"tier": tier})
		o.deps.Metrics.Increment("orchestrator.attempts." + tier)
	}
}

// outcomeRecord is the JSON body written to the OutcomeStore, mirroring
// the §6 outcome schema {task_id, signature, tier, score, elapsed_ms,
// feedback, promotion_event?}.
type outcomeRecord struct {
	TaskID         string  `json:"task_id"`
	Tier           string  `json:"tier"`
	Score          float64 `json:"score"`
	ElapsedMs      int64   `json:"elapsed_ms"`
	Feedback       string  `json:"feedback"`
	PromotionEvent string  `json:"promotion_event,omitempty"`
}

// persistOutcome writes o's Record into the OutcomeStore when one is
// configured. Storage failures are logged and swallowed: spec.md §7
// classifies state persistence failures as recoverable-by-bypass, never
// a reason to fail the attempt that already completed.
func (o *Orchestrator) persistOutcome(ctx context.Context, outcome *Outcome) {
	if o.deps.OutcomeStore == nil {
		return
	}

	rec := outcomeRecord{TaskID: outcome.TaskID, Tier: outcome.Tier}
	if outcome.Result != nil {
		rec.Score = outcome.Result.Score
		rec.ElapsedMs = outcome.Result.ElapsedMs
		rec.Feedback = outcome.Result.Feedback
	}
	if outcome.PromotionEvent != nil {
		rec.PromotionEvent = fmt.Sprintf("%s %s->%s", string(outcome.PromotionEvent.Signature), outcome.PromotionEvent.From, outcome.PromotionEvent.To)
	}

	body, err := json.Marshal(rec)
	if err != nil {
		o.logStage(outcome.TaskID, "outcome store marshal error", "error", err.Error())
		return
	}

	key := fmt.Sprintf("outcome:%s:%d", outcome.TaskID, time.Now().UnixNano())
	if err := o.deps.OutcomeStore.Put(ctx, storage.Record{Key: key, Value: body}); err != nil {
		o.logStage(outcome.TaskID, "outcome store put error", "error", err.Error())
	}
}
