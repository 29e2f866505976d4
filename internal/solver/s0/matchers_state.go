package s0

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/cedendahlkim/cascade-core/internal/task"
)

var fileCreateLinesRe = regexp.MustCompile(`create (?:a )?file (\S+) with (\d+) lines? of the form '([^']+)'`)

// matchFileCreate recognizes spec.md §8 scenario 3: "create file
// report.txt with three lines of the form 'item N'".
func matchFileCreate(t *task.Task) (string, bool) {
	m := fileCreateLinesRe.FindStringSubmatch(t.Description)
	if m == nil {
		return "", false
	}
	filename, countStr, form := m[1], m[2], m[3]
	count, err := strconv.Atoi(countStr)
	if err != nil || count <= 0 {
		return "", false
	}

	var lines string
	for i := 1; i <= count; i++ {
		line := replaceN(form, i)
		lines += line + `\n`
	}
	return fmt.Sprintf("printf '%s' > %s", lines, filename), true
}

// replaceN substitutes the literal token "N" in a template like "item N"
// with the 1-based index, mirroring terminal_solver.py's file_create
// pattern filler.
func replaceN(form string, n int) string {
	out := []rune{}
	runes := []rune(form)
	for i := 0; i < len(runes); i++ {
		if runes[i] == 'N' && (i == 0 || runes[i-1] == ' ') && (i == len(runes)-1 || runes[i+1] == ' ') {
			out = append(out, []rune(strconv.Itoa(n))...)
		} else {
			out = append(out, runes[i])
		}
	}
	return string(out)
}

var countLinesRe = regexp.MustCompile(`count (?:the )?lines? (?:matching|containing) ['"]?([^'"]+)['"]? in (\S+)`)

func matchCountLines(t *task.Task) (string, bool) {
	m := countLinesRe.FindStringSubmatch(t.Description)
	if m == nil {
		return "", false
	}
	pattern, filename := m[1], m[2]
	return fmt.Sprintf("grep -c %q %s > line_count.txt", pattern, filename), true
}

var sortFileRe = regexp.MustCompile(`sort (?:the )?lines? (?:of|in) (\S+)`)

func matchSortFile(t *task.Task) (string, bool) {
	m := sortFileRe.FindStringSubmatch(t.Description)
	if m == nil {
		return "", false
	}
	filename := m[1]
	return fmt.Sprintf("sort %s -o %s", filename, filename), true
}

var moveRenameRe = regexp.MustCompile(`(?:rename|move) (\S+) to (\S+)`)

func matchMoveRename(t *task.Task) (string, bool) {
	m := moveRenameRe.FindStringSubmatch(t.Description)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("mv %s %s", m[1], m[2]), true
}

var copyFileRe = regexp.MustCompile(`copy (\S+) to (\S+)`)

func matchCopyFile(t *task.Task) (string, bool) {
	m := copyFileRe.FindStringSubmatch(t.Description)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("cp %s %s", m[1], m[2]), true
}

func matchGitInitCommit(t *task.Task) (string, bool) {
	if !descContains(t, "init git repo", "initialize a git repo", "git init") {
		return "", false
	}
	return "git init -q\ngit add -A\ngit -c user.email=a@b.c -c user.name=solver commit -q -m init", true
}

var csvFieldRe = regexp.MustCompile(`extract (?:the )?field (\S+) from (\S+\.csv)`)

func matchCSVExtractField(t *task.Task) (string, bool) {
	m := csvFieldRe.FindStringSubmatch(t.Description)
	if m == nil {
		return "", false
	}
	field, filename := m[1], m[2]
	return fmt.Sprintf(`python3 -c "import csv,sys; r=csv.DictReader(open('%s')); [print(row['%s']) for row in r]" > extracted.txt`, filename, field), true
}

var grepExtractRe = regexp.MustCompile(`extract (?:all )?lines (?:matching|containing) ['"]?([^'"]+)['"]? from (\S+)`)

func matchGrepExtract(t *task.Task) (string, bool) {
	m := grepExtractRe.FindStringSubmatch(t.Description)
	if m == nil {
		return "", false
	}
	pattern, filename := m[1], m[2]
	return fmt.Sprintf("grep %q %s > extracted.txt", pattern, filename), true
}
