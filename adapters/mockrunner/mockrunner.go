package mockrunner

import (
	"os/exec"
	"slices"
	"sync"

	"github.com/sa6mwa/scanlaunch/port"
)

// Behavior represents a single process start for the mock runner.
type Behavior func(cmd *exec.Cmd) error

// Runner is a thread-safe mock implementation of port.ProcessStarter. It
// never creates a process.
type Runner struct {
	mu        sync.Mutex
	behaviors []Behavior
	Calls     int
	Paths     []string
	Args      [][]string
}

var _ port.ProcessStarter = (*Runner)(nil)

// New constructs a Runner that will invoke behaviors sequentially for each call.
func New(behaviors ...Behavior) *Runner {
	return &Runner{behaviors: slices.Clone(behaviors)}
}

// Start records the call metadata and dispatches to the next behavior.
func (r *Runner) Start(cmd *exec.Cmd) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls++
	r.Paths = append(r.Paths, cmd.Path)
	r.Args = append(r.Args, slices.Clone(cmd.Args))

	if len(r.behaviors) == 0 {
		return nil
	}
	behavior := r.behaviors[0]
	r.behaviors = r.behaviors[1:]
	return behavior(cmd)
}

// Remaining returns the number of queued behaviors that have not yet been consumed.
func (r *Runner) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.behaviors)
}

// CallCount returns Calls under the lock, for use from concurrent tests.
func (r *Runner) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Calls
}
