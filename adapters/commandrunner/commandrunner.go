package commandrunner

import (
	"os/exec"

	"github.com/sa6mwa/scanlaunch/port"
)

// DefaultRunner starts commands using os/exec directly.
type DefaultRunner struct{}

var _ port.ProcessStarter = DefaultRunner{}

// Start asks the OS to create the process and returns without waiting.
func (DefaultRunner) Start(cmd *exec.Cmd) error {
	return cmd.Start()
}

// Default is a shared instance of DefaultRunner.
var Default port.ProcessStarter = DefaultRunner{}
