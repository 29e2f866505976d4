package sandbox

import (
	"regexp"
	"strings"
)

// blockedCommands is the substring deny list from terminal_env.py's
// TerminalSandbox.BLOCKED_COMMANDS, extended with the spec's explicit
// "network fetchers" category (curl/wget are already present in the
// original; wget2/axel added for completeness).
var blockedCommands = []string{
	"rm -rf /",
	"rm -rf /*",
	"mkfs",
	"dd if=/dev/zero",
	":(){ :|:& };:",
	"shutdown",
	"reboot",
	"halt",
	"curl",
	"wget",
	"wget2",
	"axel",
}

// blockedPatterns is terminal_env.py's BLOCKED_PATTERNS, ported to Go
// regexp syntax.
var blockedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`rm\s+-rf\s+/[^a-zA-Z]`),
	regexp.MustCompile(`>\s*/dev/sd`),
	regexp.MustCompile(`chmod\s+777\s+/`),
}

// isBlocked reports whether command matches the deny list, and if so,
// which entry matched (for the BLOCKED marker's description).
func isBlocked(command string) (blocked bool, reason string) {
	lower := strings.ToLower(command)
	for _, bad := range blockedCommands {
		if strings.Contains(lower, strings.ToLower(bad)) {
			return true, bad
		}
	}
	for _, pat := range blockedPatterns {
		if pat.MatchString(command) {
			return true, pat.String()
		}
	}
	return false, ""
}
