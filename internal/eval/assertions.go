package eval

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cedendahlkim/cascade-core/internal/sandbox"
	"github.com/cedendahlkim/cascade-core/internal/task"
)

// checkAssertion evaluates one StateAssertion against the workspace. All
// string comparisons trim surrounding whitespace and normalize line
// endings to LF, per spec.md §4.2's tie-break rules.
func (e *Engine) checkAssertion(ctx context.Context, ws *sandbox.Workspace, a task.StateAssertion) Detail {
	d := Detail{Description: string(a.Check) + " " + a.Target, Expected: a.Expected}

	switch a.Check {
	case task.CheckFileExists:
		_, err := os.Stat(filepath.Join(ws.Root, a.Target))
		d.Passed = err == nil
		if !d.Passed {
			d.Error = fmt.Sprintf("%s does not exist", a.Target)
		}

	case task.CheckFileNotExists:
		_, err := os.Stat(filepath.Join(ws.Root, a.Target))
		d.Passed = err != nil
		if !d.Passed {
			d.Error = fmt.Sprintf("%s unexpectedly exists", a.Target)
		}

	case task.CheckDirExists:
		info, err := os.Stat(filepath.Join(ws.Root, a.Target))
		d.Passed = err == nil && info.IsDir()
		if !d.Passed {
			d.Error = fmt.Sprintf("%s is not a directory", a.Target)
		}

	case task.CheckFileContains:
		content, ok := ws.ReadFile(a.Target)
		if !ok {
			d.Error = fmt.Sprintf("%s does not exist", a.Target)
			break
		}
		hay, needle := content, a.Expected
		if a.IgnoreCase {
			hay, needle = strings.ToLower(hay), strings.ToLower(needle)
		}
		d.Passed = strings.Contains(hay, needle)
		d.Actual = content
		if !d.Passed {
			d.Error = fmt.Sprintf("%s does not contain %q", a.Target, a.Expected)
		}

	case task.CheckFileEquals:
		content, ok := ws.ReadFile(a.Target)
		if !ok {
			d.Error = fmt.Sprintf("%s does not exist", a.Target)
			break
		}
		actual, expected := normalize(content), normalize(a.Expected)
		if a.IgnoreCase {
			actual, expected = strings.ToLower(actual), strings.ToLower(expected)
		}
		d.Actual = actual
		d.Passed = actual == expected
		if !d.Passed {
			d.Error = fmt.Sprintf("expected %q got %q", expected, actual)
		}

	case task.CheckFileMatchesRegex:
		content, ok := ws.ReadFile(a.Target)
		if !ok {
			d.Error = fmt.Sprintf("%s does not exist", a.Target)
			break
		}
		re, err := regexp.Compile("(?m)" + a.Expected)
		if err != nil {
			d.Error = fmt.Sprintf("invalid regex %q: %v", a.Expected, err)
			break
		}
		d.Passed = re.MatchString(content)
		if !d.Passed {
			d.Error = fmt.Sprintf("%s does not match %q", a.Target, a.Expected)
		}

	case task.CheckFileLineCount:
		content, ok := ws.ReadFile(a.Target)
		if !ok {
			d.Error = fmt.Sprintf("%s does not exist", a.Target)
			break
		}
		count := lineCount(content)
		d.Actual = strconv.Itoa(count)
		want, err := strconv.Atoi(strings.TrimSpace(a.Expected))
		if err != nil {
			d.Error = fmt.Sprintf("invalid expected line count %q", a.Expected)
			break
		}
		d.Passed = count == want
		if !d.Passed {
			d.Error = fmt.Sprintf("expected %d lines got %d", want, count)
		}

	case task.CheckFilePermissions:
		info, err := os.Stat(filepath.Join(ws.Root, a.Target))
		if err != nil {
			d.Error = fmt.Sprintf("%s does not exist", a.Target)
			break
		}
		actual := fmt.Sprintf("%03o", info.Mode().Perm())
		d.Actual = actual
		d.Passed = actual == strings.TrimSpace(a.Expected)
		if !d.Passed {
			d.Error = fmt.Sprintf("expected permission bits %q got %q", a.Expected, actual)
		}

	case task.CheckCommandOutputEq:
		res, _ := ws.Execute(ctx, a.Target, 0, false)
		actual, expected := normalize(res.Stdout), normalize(a.Expected)
		d.Actual = actual
		d.Passed = actual == expected
		if !d.Passed {
			d.Error = fmt.Sprintf("command %q: expected %q got %q", a.Target, expected, actual)
		}

	default:
		d.Error = fmt.Sprintf("unknown check type %q", a.Check)
	}

	return d
}

// lineCount counts non-empty lines split on LF of the trimmed content,
// per spec.md §4.2's file-line-count rule.
func lineCount(content string) int {
	trimmed := normalize(content)
	if trimmed == "" {
		return 0
	}
	n := 0
	for _, line := range strings.Split(trimmed, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
