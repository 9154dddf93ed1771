package scanlaunch

import (
	"errors"
	"io/fs"
	"os/exec"
)

const (
	CommandOpenScannerUI   = "open_scanner_ui"
	CommandSpawnScannerApp = "spawn_scanner_app"
)

// Success values returned by the two commands.
const (
	Opened  = "opened"
	Spawned = "spawned"
)

// Error kinds reported by Kind.
const (
	KindOK          = "ok"
	KindUnsupported = "unsupported"
	KindNotFound    = "not_found"
	KindPermission  = "permission"
	KindFailed      = "failed"
)

var ErrUnsupportedPlatform = errors.New("scanlaunch: platform not supported")

// PlatformError is returned when a command is invoked on a platform other
// than SupportedPlatform. No process creation is attempted.
type PlatformError struct {
	Command  string
	Platform string
}

func (e *PlatformError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Command == CommandOpenScannerUI {
		return "Scanner UI launch not supported on this OS"
	}
	return "Not supported on this OS"
}

func (e *PlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// SpawnError carries the error returned by the OS process-creation call.
type SpawnError struct {
	Command string
	Target  string
	Err     error
}

func (e *SpawnError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "<nil>"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Command == CommandOpenScannerUI {
		return "Failed to open scanner UI: " + msg
	}
	return "Failed to spawn scanner app: " + msg
}

func (e *SpawnError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Kind classifies err into one of the Kind* constants.
func Kind(err error) string {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrUnsupportedPlatform):
		return KindUnsupported
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, exec.ErrNotFound):
		return KindNotFound
	case isPermissionErr(err):
		return KindPermission
	default:
		return KindFailed
	}
}
