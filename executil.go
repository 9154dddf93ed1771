package scanlaunch

import (
	"fmt"
	"os/exec"

	"github.com/sa6mwa/scanlaunch/port"
)

// StartDetached asks starter to create the process described by cmd and
// returns as soon as the OS has confirmed (or refused) creation. Nothing is
// waited on and no output is captured: stdio stays nil, so the child
// inherits nothing from the caller. On success the process handle is
// released and the caller has no further way to observe the child.
func StartDetached(starter port.ProcessStarter, cmd *exec.Cmd) (pid int, err error) {
	if starter == nil {
		return 0, fmt.Errorf("nil process starter")
	}
	if cmd == nil {
		return 0, fmt.Errorf("nil command")
	}
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = detachAttr()
	}
	if err := starter.Start(cmd); err != nil {
		return 0, err
	}
	// Test starters succeed without creating anything.
	if cmd.Process == nil {
		return 0, nil
	}
	pid = cmd.Process.Pid
	releaseProcess(cmd)
	return pid, nil
}
