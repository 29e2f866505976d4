package sandbox

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Workspace is a unique scratch directory owned exclusively by the
// attempt that opened it, together with its command-execution context
// and running history. Grounded on terminal_env.py's TerminalSandbox,
// one instance per attempt rather than the original's reusable-by-default
// singleton.
type Workspace struct {
	mu sync.Mutex

	ID      string
	Root    string
	History []BashResult
	TotalMs int64

	runner *Runner
	closed bool
}

// OpenWorkspace allocates a fresh unique directory and returns a handle
// whose Close removes it. Mirrors terminal_env.py's workspace creation
// (mktemp-style unique dir) using google/uuid for the suffix instead of
// shelling out to `mktemp`.
func (r *Runner) OpenWorkspace() (*Workspace, error) {
	id := uuid.NewString()
	root := filepath.Join(os.TempDir(), "sandbox-ws-"+id)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("sandbox: open workspace: %w", err)
	}
	return &Workspace{ID: id, Root: root, runner: r}, nil
}

// Close removes the workspace directory. Safe to call more than once.
func (w *Workspace) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return os.RemoveAll(w.Root)
}

// Execute runs command with the workspace as its current directory,
// under a restricted environment, first checking the command against the
// deny list. Blocked commands return exit 126 with a BLOCKED marker
// without ever executing, exactly as terminal_env.py's _is_blocked gate
// does. If recorded is true, the invocation and its elapsed time are
// appended to the workspace's history.
func (w *Workspace) Execute(ctx context.Context, command string, timeout time.Duration, recorded bool) (*BashResult, error) {
	cfg := w.runner.Config()
	if timeout <= 0 {
		timeout = cfg.CommandTimeout
	}

	if blocked, reason := isBlocked(command); blocked {
		res := &BashResult{
			Command:   command,
			Stdout:    "",
			Stderr:    "BLOCKED: command matches deny list (" + reason + ")",
			ExitCode:  126,
			Blocked:   true,
			BlockedBy: reason,
		}
		if recorded {
			w.record(res)
		}
		return res, nil
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "bash", "-c", command)
	cmd.Dir = w.Root
	cmd.Env = []string{
		"HOME=" + w.Root,
		"WORKSPACE=" + w.Root,
		"LANG=en_US.UTF-8",
		"TERM=dumb",
		"PYTHONDONTWRITEBYTECODE=1",
	}
	setPgid(cmd)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start).Milliseconds()

	res := &BashResult{
		Command:   command,
		Stdout:    truncate(stdout.String(), cfg.MaxStdoutBytes),
		Stderr:    truncate(stderr.String(), cfg.MaxStderrBytes),
		ElapsedMs: elapsed,
	}

	if execCtx.Err() == context.DeadlineExceeded {
		killProcessGroup(cmd)
		res.TimedOut = true
		res.ExitCode = -1
	} else if exitErr, ok := runErr.(*exec.ExitError); ok {
		res.ExitCode = exitErr.ExitCode()
	} else if runErr != nil {
		res.ExitCode = -1
		res.Stderr = runErr.Error()
	}

	if recorded {
		w.record(res)
	}
	return res, nil
}

func (w *Workspace) record(res *BashResult) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.History = append(w.History, *res)
	w.TotalMs += res.ElapsedMs
}

// ReadFile returns up to MaxReadFileBytes of the file at rel (relative to
// the workspace root). Returns ok=false if the file does not exist.
func (w *Workspace) ReadFile(rel string) (content string, ok bool) {
	data, err := os.ReadFile(filepath.Join(w.Root, rel))
	if err != nil {
		return "", false
	}
	return truncate(string(data), w.runner.Config().MaxReadFileBytes), true
}

// ListFiles returns up to MaxListEntries paths under rel (relative to the
// workspace root), matching terminal_env.py's list_files cap.
func (w *Workspace) ListFiles(rel string) ([]string, error) {
	cfg := w.runner.Config()
	base := filepath.Join(w.Root, rel)
	var out []string
	err := filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if path == base {
			return nil
		}
		relPath, relErr := filepath.Rel(w.Root, path)
		if relErr != nil {
			return nil
		}
		out = append(out, relPath)
		if len(out) >= cfg.MaxListEntries {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sandbox: list files: %w", err)
	}
	return out, nil
}
