package task

// Tier names the originating solver tier of a Candidate or an outcome
// record. TierNone marks "no tier solved this attempt".
type Tier string

const (
	TierNone Tier = "none"
	TierS0   Tier = "s0"
	TierS1   Tier = "s1"
	TierS2   Tier = "s2"
)

// Candidate is a proposed solution artifact: source text for an IO-task,
// or a newline-separated shell command sequence for a State-task.
type Candidate struct {
	Source string
	Tier   Tier
}
