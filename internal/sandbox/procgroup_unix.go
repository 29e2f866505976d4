//go:build unix

package sandbox

import (
	"os/exec"
	"syscall"
)

// setPgid places the child in its own process group so a timeout can
// kill the whole tree (shell pipelines, forked children) instead of just
// the immediate process.
func setPgid(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcessGroup sends SIGKILL to the negative PID, i.e. the whole
// process group started by setPgid.
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
