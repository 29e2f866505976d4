package sandbox

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// interpreterArgv maps a configured language to its invocation argv, the
// way instruments.languageInterpreter does — extended to run a script
// file rather than feed `/dev/stdin`, since the native runner writes
// code to a real temp file instead of a container-mounted pipe.
func interpreterArgv(lang, path string) ([]string, error) {
	switch strings.ToLower(lang) {
	case "python", "python3", "py":
		return []string{"python3", path}, nil
	case "javascript", "js", "node":
		return []string{"node", path}, nil
	case "bash", "sh":
		return []string{"bash", path}, nil
	default:
		return nil, fmt.Errorf("sandbox: unsupported language %q", lang)
	}
}

// RunProgram writes code to a temporary file, invokes the configured
// interpreter, feeds stdin, and captures stdout/stderr capped at the
// configured byte limits. The temp file is removed on every exit path,
// including a panic unwinding through the deferred cleanup, matching
// programming_env.py's execute_code `finally: os.unlink(tmp_path)`.
func (r *Runner) RunProgram(ctx context.Context, code, stdin string, timeout time.Duration) (*RunResult, error) {
	cfg := r.Config()
	if timeout <= 0 {
		timeout = cfg.Timeout
	}

	ext := ".py"
	switch strings.ToLower(cfg.Language) {
	case "javascript", "js", "node":
		ext = ".js"
	case "bash", "sh":
		ext = ".sh"
	}

	f, err := os.CreateTemp("", "sandbox-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("sandbox: create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(code); err != nil {
		f.Close()
		return nil, fmt.Errorf("sandbox: write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("sandbox: close temp file: %w", err)
	}

	argv, err := interpreterArgv(cfg.Language, path)
	if err != nil {
		return nil, err
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = []string{
		"HOME=" + os.TempDir(),
		"LANG=en_US.UTF-8",
		"PYTHONDONTWRITEBYTECODE=1",
		"PYTHONIOENCODING=utf-8",
		"TERM=dumb",
	}
	setPgid(cmd)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start).Milliseconds()

	result := &RunResult{
		Stdout:    truncate(stdout.String(), cfg.MaxStdoutBytes),
		Stderr:    truncate(stderr.String(), cfg.MaxStderrBytes),
		ElapsedMs: elapsed,
	}

	if execCtx.Err() == context.DeadlineExceeded {
		killProcessGroup(cmd)
		result.TimedOut = true
		result.ExitCode = -1
		r.recordRun(true)
		return result, nil
	}

	if exitErr, ok := runErr.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		r.recordRun(true)
		return result, nil
	}
	if runErr != nil {
		r.recordRun(true)
		return nil, fmt.Errorf("sandbox: run program: %w", runErr)
	}

	result.OK = true
	result.ExitCode = 0
	r.recordRun(false)
	return result, nil
}
