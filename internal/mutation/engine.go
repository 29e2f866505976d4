// Package mutation implements the Mutation Engine ("chaos monkey"): it
// takes known-correct candidate source and introduces a single, structured
// bug, then verifies the mutation actually breaks the candidate against
// its own task before handing back a debugging challenge. Grounded on
// chaos_monkey.py's six mutators, its _in_string heuristic, and its
// shuffle-and-try control flow (random.shuffle + first mutator that
// applies), not a commit-to-one-kind-and-fail design.
package mutation

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// mutatorFunc attempts one kind of mutation against code. It returns
// ok=false when the pattern it looks for simply isn't present, mirroring
// chaos_monkey.py's mutators returning None.
type mutatorFunc func(rng *rand.Rand, code string) (broken, kind, description string, ok bool)

// Engine applies mutations. Safe for concurrent use; guards only the RNG,
// since mutatorFuncs are pure functions of their inputs.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a mutation engine with a randomly seeded generator — chaos
// monkey mutations are meant to vary run to run, unlike the deterministic
// S0 registry.
func New() *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed()))}
}

func seed() int64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

var allMutators = []mutatorFunc{
	mutateOffByOne,
	mutateWrongOperator,
	mutateComparisonFlip,
	mutateOutputFormat,
	mutateIndexError,
	mutateWrongInit,
}

// MutateSolution tries each mutator kind in a random order and returns the
// first one that finds something to break, per chaos_monkey.py's
// mutate_solution. Returns ok=false if no mutator found an applicable
// pattern in code at all.
func (e *Engine) MutateSolution(code string) (broken, kind, description string, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, i := range e.rng.Perm(len(allMutators)) {
		if broken, kind, description, ok = allMutators[i](e.rng, code); ok {
			return broken, kind, description, true
		}
	}
	return "", "", "", false
}
