package mutation

import (
	"math/rand"
	"regexp"
	"strings"
)

var rangeRe = regexp.MustCompile(`range\((\w+)\)`)

// mutateOffByOne changes range(n) to range(n-1) or range(n+1), per
// chaos_monkey.py's _mutate_off_by_one.
func mutateOffByOne(rng *rand.Rand, code string) (string, string, string, bool) {
	locs := rangeRe.FindAllStringSubmatchIndex(code, -1)
	if len(locs) == 0 {
		return "", "", "", false
	}
	loc := locs[rng.Intn(len(locs))]
	variable := code[loc[2]:loc[3]]
	var replacement, desc string
	if rng.Float64() < 0.5 {
		replacement = "range(" + variable + "-1)"
		desc = "Off-by-one: range(" + variable + ") -> range(" + variable + "-1)"
	} else {
		replacement = "range(" + variable + "+1)"
		desc = "Off-by-one: range(" + variable + ") -> range(" + variable + "+1)"
	}
	broken := code[:loc[0]] + replacement + code[loc[1]:]
	return broken, "off_by_one", desc, true
}

type opSwap struct {
	pattern     *regexp.Regexp
	replacement string
	desc        string
}

var operatorSwaps = []opSwap{
	{regexp.MustCompile(`\+`), "-", "Operator swap: + -> -"},
	{regexp.MustCompile(`-`), "+", "Operator swap: - -> +"},
	{regexp.MustCompile(`\*(?:[^*]|$)`), "//", "Operator swap: * -> //"},
}

// mutateWrongOperator swaps + with -, or * with //, skipping matches
// inside string literals via inString, per _mutate_wrong_operator. Go's
// RE2 engine has no lookaround, so unlike the original it doesn't exclude
// "+="/"-=" from candidates; in practice that still yields valid,
// differently-behaving Python, which is all this mutator needs.
func mutateWrongOperator(rng *rand.Rand, code string) (string, string, string, bool) {
	order := rng.Perm(len(operatorSwaps))
	for _, i := range order {
		swap := operatorSwaps[i]
		locs := swap.pattern.FindAllStringIndex(code, -1)
		var candidates [][]int
		for _, loc := range locs {
			if !inString(code, loc[0]) {
				candidates = append(candidates, loc)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		loc := candidates[rng.Intn(len(candidates))]
		// The '*' pattern can match two bytes ("*x"); only replace the '*' itself.
		end := loc[0] + 1
		broken := code[:loc[0]] + swap.replacement + code[end:]
		if broken != code {
			return broken, "wrong_operator", swap.desc, true
		}
	}
	return "", "", "", false
}

var comparisonSwaps = []opSwap{
	{regexp.MustCompile(`<=`), "<", "Comparison flip: <= -> <"},
	{regexp.MustCompile(`>=`), ">", "Comparison flip: >= -> >"},
	{regexp.MustCompile(`<`), "<=", "Comparison flip: < -> <="},
	{regexp.MustCompile(`>`), ">=", "Comparison flip: > -> >="},
}

// mutateComparisonFlip flips <, >, <=, >=, skipping string-literal
// matches, per _mutate_comparison_flip. The two-character patterns are
// tried first so a "<=" isn't mistakenly split into a "<" match.
func mutateComparisonFlip(rng *rand.Rand, code string) (string, string, string, bool) {
	for _, swap := range comparisonSwaps {
		locs := swap.pattern.FindAllStringIndex(code, -1)
		var candidates [][]int
		for _, loc := range locs {
			if !inString(code, loc[0]) {
				candidates = append(candidates, loc)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		loc := candidates[rng.Intn(len(candidates))]
		broken := code[:loc[0]] + swap.replacement + code[loc[1]:]
		if broken != code {
			return broken, "comparison_flip", swap.desc, true
		}
	}
	return "", "", "", false
}

// mutateOutputFormat changes the output separator or appends a stray
// blank line, per _mutate_output_format.
func mutateOutputFormat(rng *rand.Rand, code string) (string, string, string, bool) {
	if strings.Contains(code, "' '.join") {
		broken := strings.Replace(code, "' '.join", "','.join", 1)
		return broken, "output_format", "Output format: space-separated -> comma-separated", true
	}
	if strings.Contains(code, "print(") && !strings.Contains(code, `\n`) {
		return code + "\nprint()", "output_format", "Output format: extra empty line at end", true
	}
	return "", "", "", false
}

var indexPatterns = []opSwap{
	{regexp.MustCompile(`\[0\]`), "[1]", "Index error: [0] -> [1]"},
	{regexp.MustCompile(`\[-1\]`), "[-2]", "Index error: [-1] -> [-2]"},
}

// mutateIndexError changes [0] to [1] or [-1] to [-2], per
// _mutate_index_error.
func mutateIndexError(rng *rand.Rand, code string) (string, string, string, bool) {
	order := rng.Perm(len(indexPatterns))
	for _, i := range order {
		p := indexPatterns[i]
		locs := p.pattern.FindAllStringIndex(code, -1)
		if len(locs) == 0 {
			continue
		}
		loc := locs[rng.Intn(len(locs))]
		broken := code[:loc[0]] + p.replacement + code[loc[1]:]
		return broken, "index_error", p.desc, true
	}
	return "", "", "", false
}

// mutateWrongInit changes an initial value: "= 0\n" to "= 1\n", or
// float('inf')/-inf to 0, per _mutate_wrong_init.
func mutateWrongInit(rng *rand.Rand, code string) (string, string, string, bool) {
	if strings.Contains(code, "= 0\n") {
		broken := strings.Replace(code, "= 0\n", "= 1\n", 1)
		return broken, "wrong_init", "Wrong init: = 0 -> = 1", true
	}
	if strings.Contains(code, "float('inf')") {
		broken := strings.Replace(code, "float('inf')", "0", 1)
		return broken, "wrong_init", "Wrong init: float('inf') -> 0", true
	}
	if strings.Contains(code, "float('-inf')") {
		broken := strings.Replace(code, "float('-inf')", "0", 1)
		return broken, "wrong_init", "Wrong init: float('-inf') -> 0", true
	}
	return "", "", "", false
}

// inString is a rough heuristic for whether pos sits inside a string
// literal on its line: count unmatched quote characters before it, per
// chaos_monkey.py's _in_string.
func inString(code string, pos int) bool {
	lineStart := strings.LastIndex(code[:pos], "\n") + 1
	line := code[lineStart:pos]
	return strings.Count(line, "'")%2 == 1 || strings.Count(line, `"`)%2 == 1
}
