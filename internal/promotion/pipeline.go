// Package promotion implements the Promotion Pipeline (spec.md §4.6):
// the state machine that observes per-signature successes and failures
// and moves strategies from S2 synthesis to the S1 cache and from S1 to
// the S0 deterministic registry, plus the Strategy Cache (S1 lookup) and
// an ephemeral ResponseCache layer. Grounded directly on
// promotion_pipeline.py, restructured as a mutex-guarded engine in the
// style of internal/evolution/engine.go.
package promotion

import (
	"sync"
	"time"
)

// Default thresholds, spec.md §4.6.
const (
	DefaultS2ToS1Threshold = 3
	DefaultS1ToS0Threshold = 10
)

// Pipeline is the mutex-guarded owner of the PromotionState document.
// All reads and mutations go through this single guarded object per
// process (spec.md §5's shared-resource policy).
type Pipeline struct {
	mu sync.Mutex

	doc *Document

	s2ToS1Threshold int
	s1ToS0Threshold int

	cache *responseCache

	store *Store
}

// New creates a Promotion Pipeline with an empty in-memory state. Use
// NewWithStore to attach disk persistence.
func New() *Pipeline {
	return &Pipeline{
		doc:             newDocument(),
		s2ToS1Threshold: DefaultS2ToS1Threshold,
		s1ToS0Threshold: DefaultS1ToS0Threshold,
		cache:           newResponseCache(24 * time.Hour),
	}
}

// SetS2ToS1Threshold overrides the default S2→S1 promotion threshold (3).
func (p *Pipeline) SetS2ToS1Threshold(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s2ToS1Threshold = n
}

// SetS1ToS0Threshold overrides the default S1→S0 promotion threshold (10).
func (p *Pipeline) SetS1ToS0Threshold(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s1ToS0Threshold = n
}

// PromotionEvent describes a tier transition returned by RecordSuccess.
type PromotionEvent struct {
	Signature  Signature
	From       string
	To         string
	SuccessCount int
}

// RecordSuccess records a successful attempt for (category, description)
// at sourceTier with the winning artifact. Returns a PromotionEvent if
// this call triggered a tier promotion. Grounded on
// promotion_pipeline.py's record_success.
func (p *Pipeline) RecordSuccess(category, description, artifact, sourceTier string) (*PromotionEvent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sig := sign(category, description)
	now := time.Now()

	cand, exists := p.doc.Candidates[sig]

	switch {
	case sourceTier == "s2" && !exists:
		cand = &Candidate{
			Signature: sig, Category: category, State: StateTrackingS2ToS1,
			SourceTier: "s2", TargetTier: "s1",
			FirstSeen: now,
		}
		p.doc.Candidates[sig] = cand

	case (sourceTier == "s1" || sourceTier == "s2") && exists:
		// continue tracking the existing candidate

	default:
		// s0 successes, or s1 successes with no open candidate, never
		// open or advance a promotion candidate.
		return nil, p.persistLocked()
	}

	cand.Successes++
	cand.ConsecutiveSuccesses++
	cand.LastSeen = now
	cand.considerArtifact(artifact)

	var event *PromotionEvent

	if cand.State == StateTrackingS2ToS1 && cand.Successes >= p.s2ToS1Threshold {
		p.doc.PromotedS1[sig] = cand.BestCode
		event = &PromotionEvent{Signature: sig, From: "s2", To: "s1", SuccessCount: cand.Successes}

		p.doc.Candidates[sig] = &Candidate{
			Signature: sig, Category: category, State: StateTrackingS1ToS0,
			SourceTier: "s1", TargetTier: "s0",
			Successes:            cand.Successes,
			ConsecutiveSuccesses: 0,
			BestCode:             cand.BestCode,
			RecentSuccesses:      cand.RecentSuccesses,
			FirstSeen:            now, LastSeen: now,
		}
	} else if cand.State == StateTrackingS1ToS0 && cand.ConsecutiveSuccesses >= p.s1ToS0Threshold {
		template := cand.extractTemplate()
		p.doc.PromotedS0[sig] = template
		event = &PromotionEvent{Signature: sig, From: "s1", To: "s0", SuccessCount: cand.ConsecutiveSuccesses}
		cand.State = StatePromotedS0
	}

	if err := p.persistLocked(); err != nil {
		return event, err
	}
	if event != nil {
		p.logPromotionLocked(*event)
	}
	return event, nil
}

// RecordFailure resets the consecutive-success streak for (category,
// description)'s signature, if a candidate is already being tracked.
// Mirrors promotion_pipeline.py's record_failure: a failure before any
// S2 success is never tracked at all, since there is no candidate yet.
func (p *Pipeline) RecordFailure(category, description, sourceTier string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sig := sign(category, description)
	cand, exists := p.doc.Candidates[sig]
	if !exists {
		return nil
	}
	cand.Failures++
	cand.ConsecutiveSuccesses = 0
	cand.LastSeen = time.Now()
	return p.persistLocked()
}

// S1Lookup returns the S1-cached artifact for (category, description), if
// any.
func (p *Pipeline) S1Lookup(category, description string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	artifact, ok := p.doc.PromotedS1[sign(category, description)]
	return artifact, ok
}

// S0Lookup returns the S0 template for (category, description), if any.
// The orchestrator consults this before S1Lookup so that a promoted S0
// entry always wins even though the S1 entry is left in place
// (DESIGN.md Open Question (a): shadow, don't delete).
func (p *Pipeline) S0Lookup(category, description string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	artifact, ok := p.doc.PromotedS0[sign(category, description)]
	return artifact, ok
}

// CachePut stores an artifact in the ephemeral ResponseCache keyed by
// (signature, strategy), with a 24h TTL.
func (p *Pipeline) CachePut(category, description, strategy, artifact string) {
	sig := sign(category, description)
	p.cache.put(sig, strategy, artifact)
}

// CacheGet retrieves a non-expired ResponseCache entry.
func (p *Pipeline) CacheGet(category, description, strategy string) (string, bool) {
	sig := sign(category, description)
	return p.cache.get(sig, strategy)
}

// Stats is a debug/introspection snapshot, grounded on
// promotion_pipeline.py's get_stats (capped to the first 20 candidates).
type Stats struct {
	PromotedS1Count int
	PromotedS0Count int
	TrackedCount    int
	Sample          []*Candidate
}

func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Stats{
		PromotedS1Count: len(p.doc.PromotedS1),
		PromotedS0Count: len(p.doc.PromotedS0),
		TrackedCount:    len(p.doc.Candidates),
	}
	for _, c := range p.doc.Candidates {
		if len(s.Sample) >= 20 {
			break
		}
		s.Sample = append(s.Sample, c)
	}
	return s
}
