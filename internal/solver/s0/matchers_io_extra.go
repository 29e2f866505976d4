package s0

import (
	"github.com/cedendahlkim/cascade-core/internal/task"
)

// Matchers for the remaining named categories code_solver.py's dispatcher
// lists (_solve_docker_audit, _solve_firewall_analysis,
// _solve_linear_regression, _solve_unicode_analysis,
// _solve_dependency_audit, _solve_api_retry) — the original's bodies were
// not retrieved, only the dispatch names, so these are built from the
// category names and spec.md §4.3's "text/regex/csv/json aggregations"
// and general task shape rather than transcribed source.

// matchDockerAudit: count exposed ports across a list of image:port lines.
func matchDockerAudit(t *task.Task) (string, bool) {
	if !descContains(t, "docker", "exposed port", "container image") {
		return "", false
	}
	return `n = int(input())
exposed = set()
for _ in range(n):
    line = input()
    parts = line.split(':')
    if len(parts) >= 2:
        exposed.add(parts[-1].strip())
print(len(exposed))
`, true
}

// matchFirewallAnalysis: count rule lines that allow a given port.
func matchFirewallAnalysis(t *task.Task) (string, bool) {
	if !descContains(t, "firewall", "allow rule", "blocked port") {
		return "", false
	}
	return `n = int(input())
rules = [input().split() for _ in range(n)]
port = input().strip()
count = sum(1 for r in rules if len(r) >= 2 and r[0] == "allow" and r[1] == port)
print(count)
`, true
}

// matchLinearRegression: least-squares slope/intercept over (x, y) pairs.
func matchLinearRegression(t *task.Task) (string, bool) {
	if !descContains(t, "linear regression", "slope and intercept", "line of best fit") {
		return "", false
	}
	return `n = int(input())
pts = [tuple(map(float, input().split())) for _ in range(n)]
xs = [p[0] for p in pts]
ys = [p[1] for p in pts]
mean_x = sum(xs) / n
mean_y = sum(ys) / n
num = sum((x - mean_x) * (y - mean_y) for x, y in pts)
den = sum((x - mean_x) ** 2 for x in xs)
slope = num / den if den else 0.0
intercept = mean_y - slope * mean_x
print(f"{slope:.4f} {intercept:.4f}")
`, true
}

// matchUnicodeAnalysis: count non-ASCII codepoints in a line of text.
func matchUnicodeAnalysis(t *task.Task) (string, bool) {
	if !descContains(t, "unicode", "non-ascii", "codepoint") {
		return "", false
	}
	return `line = input()
count = sum(1 for ch in line if ord(ch) > 127)
print(count)
`, true
}

// matchDependencyAudit: count distinct package names across requirement lines.
func matchDependencyAudit(t *task.Task) (string, bool) {
	if !descContains(t, "dependency audit", "distinct packages", "requirements.txt") {
		return "", false
	}
	return `import re
n = int(input())
names = set()
for _ in range(n):
    line = input().strip()
    m = re.match(r'^[A-Za-z0-9_.\-]+', line)
    if m:
        names.add(m.group(0).lower())
print(len(names))
`, true
}

// matchAPIRetry: simulate a fixed retry budget against a sequence of
// pass/fail outcomes and report whether the call eventually succeeded.
func matchAPIRetry(t *task.Task) (string, bool) {
	if !descContains(t, "retry budget", "retries before giving up", "retry the call") {
		return "", false
	}
	return `n = int(input())
outcomes = [input().strip() for _ in range(n)]
max_retries = int(input())
attempts = 0
success = False
for outcome in outcomes:
    attempts += 1
    if outcome == "ok":
        success = True
        break
    if attempts >= max_retries:
        break
print("ok" if success else "failed", attempts)
`, true
}

// registerIOExtras appends the extra category matchers code_solver.py
// names but whose bodies were not retrieved; called from NewIORegistry.
func registerIOExtras(r *Registry) {
	r.add("docker_audit", matchDockerAudit)
	r.add("firewall_analysis", matchFirewallAnalysis)
	r.add("linear_regression", matchLinearRegression)
	r.add("unicode_analysis", matchUnicodeAnalysis)
	r.add("dependency_audit", matchDependencyAudit)
	r.add("api_retry", matchAPIRetry)
}
