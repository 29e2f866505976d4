package mutation

import (
	"fmt"
	"strings"

	"github.com/cedendahlkim/cascade-core/internal/task"
)

// RefactorTask asks for a rewrite of an already-correct solution under a
// stated constraint, rather than a bug fix, per
// chaos_monkey.py's generate_refactor_task.
type RefactorTask struct {
	ChallengeType string
	Task          *task.Task
}

type refactorChallenge struct {
	kind string
	desc string
}

// GenerateRefactorChallenge inspects correctCode for refactor
// opportunities — nested loops, verbosity, imperative style where a
// functional idiom would fit — and builds a challenge task demanding the
// same I/O behavior from a different implementation. Returns ok=false
// when correctCode is too short to have interesting structure or matches
// none of the challenge heuristics, per the original's behavior of
// returning None.
func (e *Engine) GenerateRefactorChallenge(t *task.Task, correctCode string) (*RefactorTask, bool) {
	lines := strings.Split(strings.TrimSpace(correctCode), "\n")
	if len(lines) < 3 {
		return nil, false
	}

	var challenges []refactorChallenge
	if strings.Count(correctCode, "for") >= 2 {
		challenges = append(challenges, refactorChallenge{
			"optimize",
			"Optimize the code to use fewer nested loops. Aim for better than O(n^2) time complexity if possible.",
		})
	}
	if len(lines) > 8 {
		challenges = append(challenges, refactorChallenge{
			"compact",
			"Rewrite the code more compactly -- at most half as many lines, while staying readable and correct.",
		})
	}
	if !strings.Contains(correctCode, "import") && containsAny(correctCode, "sorted", "sum", "max", "min") {
		challenges = append(challenges, refactorChallenge{
			"functional",
			"Rewrite the code in a functional style using comprehensions or built-in aggregation instead of explicit loops.",
		})
	}
	if len(challenges) == 0 {
		return nil, false
	}

	e.mu.Lock()
	chosen := challenges[e.rng.Intn(len(challenges))]
	e.mu.Unlock()

	refactored := &task.Task{
		ID:          fmt.Sprintf("refactor-%s-%s", chosen.kind, t.ID),
		Title:       "Refactor: " + t.Title,
		Description: buildRefactorDescription(t, correctCode, chosen.desc),
		Difficulty:  min(10, t.Difficulty+2),
		Category:    "refactor_" + t.Category,
		Kind:        t.Kind,
		TestCases:   t.TestCases,
		Hints:       []string{"Keep the same I/O behavior, change only the implementation"},
		Tags:        append([]string{"refactor", chosen.kind}, t.Tags...),
	}

	return &RefactorTask{ChallengeType: chosen.kind, Task: refactored}, true
}

func buildRefactorDescription(t *task.Task, correctCode, challengeDesc string) string {
	return "Original task: " + t.Description +
		"\n\nCurrent solution:\n```\n" + correctCode + "\n```\n\n" +
		"CHALLENGE: " + challengeDesc + "\n\nThe code must still produce exactly the same output."
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
