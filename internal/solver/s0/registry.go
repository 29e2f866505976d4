// Package s0 implements the Deterministic Solver Registry: an ordered
// list of pattern matchers, each recognizing one well-known task shape
// and emitting exact candidate source. Grounded on code_solver.py's
// solve_deterministic dispatcher and terminal_solver.py's analogous
// shell-command dispatcher, with the ordered-preference registry shape
// borrowed from instruments/skill.go's SkillRegistry.
package s0

import (
	"github.com/cedendahlkim/cascade-core/internal/task"
)

// Matcher inspects a task and, if it recognizes the pattern, emits exact
// candidate source. A matcher MUST treat any internal failure to produce
// a usable candidate as a non-match (return "", false), never as a panic
// or error — the registry and the orchestrator rely on this to cascade
// to the next matcher, exactly as code_solver.py's
// `except Exception: continue` does around each solver call.
type Matcher func(t *task.Task) (source string, ok bool)

// Registry is the ordered list of matchers tried in sequence; the first
// match wins.
type Registry struct {
	matchers []namedMatcher
}

type namedMatcher struct {
	name string
	fn   Matcher
}

// NewIORegistry returns the registry for IO-tasks, ordered the way
// code_solver.py orders its solver list (simple/common patterns first).
func NewIORegistry() *Registry {
	r := &Registry{}
	r.add("two_sum", matchTwoSum)
	r.add("balanced_brackets", matchBalancedBrackets)
	r.add("arithmetic", matchArithmetic)
	r.add("string_reverse", matchStringReverse)
	r.add("string_case", matchStringCase)
	r.add("running_sum", matchRunningSum)
	r.add("remove_duplicates", matchRemoveDuplicates)
	r.add("fizzbuzz", matchFizzBuzz)
	r.add("max_subarray", matchMaxSubarray)
	r.add("gcd_lcm", matchGCDLCM)
	r.add("palindrome_check", matchPalindrome)
	r.add("word_count", matchWordCount)

	// Graph primitives.
	r.add("bfs_reachability", matchBFSReachability)
	r.add("shortest_path", matchShortestPath)
	r.add("topo_sort", matchTopoSort)
	r.add("cycle_detection", matchCycleDetection)
	r.add("bipartite_check", matchBipartiteCheck)
	r.add("connected_components", matchConnectedComponents)

	// Classic dynamic programming.
	r.add("knapsack", matchKnapsack)
	r.add("lcs", matchLCS)
	r.add("coin_change", matchCoinChange)
	r.add("climbing_stairs", matchClimbingStairs)
	r.add("lis", matchLIS)

	// Combinatorics.
	r.add("permutations", matchPermutations)
	r.add("combinations", matchCombinations)
	r.add("subsets", matchSubsets)

	// Intervals.
	r.add("activity_selection", matchActivitySelection)
	r.add("min_interval_removal", matchMinIntervalRemoval)

	// Data-structure simulations.
	r.add("min_stack", matchMinStack)
	r.add("lru_cache", matchLRUCache)
	r.add("trie", matchTrie)
	r.add("rpn_evaluation", matchRPNEvaluation)

	// Matrix operations.
	r.add("matrix_transpose", matchMatrixTranspose)
	r.add("matrix_multiply", matchMatrixMultiply)

	// Number theory.
	r.add("sieve", matchSieve)
	r.add("modular_exponentiation", matchModularExponentiation)

	// Text/regex/csv/json aggregations.
	r.add("regex_count", matchRegexCount)
	r.add("csv_column_sum", matchCSVColumnSum)
	r.add("json_field_sum", matchJSONFieldSum)
	registerIOExtras(r)
	return r
}

// NewStateRegistry returns the registry for State-tasks, ordered the way
// terminal_solver.py orders its solver list.
func NewStateRegistry() *Registry {
	r := &Registry{}
	r.add("file_create", matchFileCreate)
	r.add("count_lines", matchCountLines)
	r.add("sort_file", matchSortFile)
	r.add("move_rename", matchMoveRename)
	r.add("copy_file", matchCopyFile)
	r.add("git_init_commit", matchGitInitCommit)
	r.add("csv_extract_field", matchCSVExtractField)
	r.add("grep_extract", matchGrepExtract)
	registerStateExtras(r)
	return r
}

func (r *Registry) add(name string, fn Matcher) {
	r.matchers = append(r.matchers, namedMatcher{name, fn})
}

// Solve tries each matcher in order and returns the first candidate
// source produced, or ("", "", false) if none match. The matcher name is
// returned for observability, not as part of the contract spec.md §4.3
// defines (which only names `solve_deterministic(task) → optional
// candidate_source`).
func (r *Registry) Solve(t *task.Task) (source, matcherName string, ok bool) {
	for _, m := range r.matchers {
		src, matched := safeMatch(m.fn, t)
		if matched {
			return src, m.name, true
		}
	}
	return "", "", false
}

// safeMatch recovers from a panicking matcher and treats it as a
// non-match, per the contract in code_solver.py's try/except around each
// solver call.
func safeMatch(fn Matcher, t *task.Task) (src string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			src, ok = "", false
		}
	}()
	return fn(t)
}
