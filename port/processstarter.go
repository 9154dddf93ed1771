package port

import (
	"os/exec"
)

// ProcessStarter abstracts process creation so starters can be plugged in
// across packages without depending on a specific adapter implementation.
// Start must return once the OS has created the process (or failed to) and
// must never wait for it to exit.
type ProcessStarter interface {
	Start(cmd *exec.Cmd) error
}
