package s0

import (
	"fmt"
	"regexp"

	"github.com/cedendahlkim/cascade-core/internal/task"
)

// Matchers rounding out terminal_solver.py's dispatcher-name list
// (_solve_unique_words, _solve_find_files, _solve_git_branch_merge,
// _solve_log_analysis, _solve_json_transform) — only the dispatch names
// were retrieved, not the bodies, so these are built from the category
// name and the shell-command idiom matchers_state.go already establishes.

var uniqueWordsRe = regexp.MustCompile(`(?:unique|distinct) words? (?:in|from) (\S+)`)

// matchUniqueWords: write the sorted set of distinct words in a file to
// unique_words.txt.
func matchUniqueWords(t *task.Task) (string, bool) {
	m := uniqueWordsRe.FindStringSubmatch(t.Description)
	if m == nil {
		return "", false
	}
	filename := m[1]
	return fmt.Sprintf("tr -s '[:space:]' '\\n' < %s | sort -u > unique_words.txt", filename), true
}

var findFilesRe = regexp.MustCompile(`find (?:all )?files? (?:matching|named) ['"]?([^'"]+)['"]?`)

// matchFindFiles: list files matching a glob pattern into found_files.txt.
func matchFindFiles(t *task.Task) (string, bool) {
	m := findFilesRe.FindStringSubmatch(t.Description)
	if m == nil {
		return "", false
	}
	pattern := m[1]
	return fmt.Sprintf("find . -name %q > found_files.txt", pattern), true
}

// matchGitBranchMerge: create a branch, commit on it, merge back to the
// branch the repo was on.
func matchGitBranchMerge(t *task.Task) (string, bool) {
	if !descContains(t, "create a branch", "new branch", "merge") || !descContains(t, "git") {
		return "", false
	}
	return "git init -q\n" +
		"git add -A\n" +
		"git -c user.email=a@b.c -c user.name=solver commit -q -m init --allow-empty\n" +
		"git checkout -q -b feature\n" +
		"git add -A\n" +
		"git -c user.email=a@b.c -c user.name=solver commit -q -m feature --allow-empty\n" +
		"git checkout -q -\n" +
		"git merge -q --no-edit feature", true
}

var logAnalysisRe = regexp.MustCompile(`count (?:the )?(?:occurrences of )?['"]?([A-Z]+)['"]? (?:lines|entries) in (\S+)`)

// matchLogAnalysis: count log lines at a given severity level.
func matchLogAnalysis(t *task.Task) (string, bool) {
	m := logAnalysisRe.FindStringSubmatch(t.Description)
	if m == nil {
		return "", false
	}
	level, filename := m[1], m[2]
	return fmt.Sprintf("grep -c %q %s > log_count.txt", level, filename), true
}

var jsonTransformRe = regexp.MustCompile(`convert (\S+\.json) to (\S+\.csv)`)

// matchJSONTransform: flatten a JSON array of flat objects into a CSV file.
func matchJSONTransform(t *task.Task) (string, bool) {
	m := jsonTransformRe.FindStringSubmatch(t.Description)
	if m == nil {
		return "", false
	}
	src, dst := m[1], m[2]
	return fmt.Sprintf(`python3 -c "import json, csv; rows = json.load(open('%s')); f = open('%s', 'w', newline=''); w = csv.DictWriter(f, fieldnames=list(rows[0].keys())); w.writeheader(); w.writerows(rows); f.close()"`, src, dst), true
}

// registerStateExtras appends the extra category matchers
// terminal_solver.py names but whose bodies were not retrieved; called
// from NewStateRegistry.
func registerStateExtras(r *Registry) {
	r.add("unique_words", matchUniqueWords)
	r.add("find_files", matchFindFiles)
	r.add("git_branch_merge", matchGitBranchMerge)
	r.add("log_analysis", matchLogAnalysis)
	r.add("json_transform", matchJSONTransform)
}
