//go:build windows

package scanlaunch

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/windows"
)

func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
	}
}

func releaseProcess(cmd *exec.Cmd) {
	_ = cmd.Process.Release()
}

// resolveUtility maps a bare executable name onto the system directory
// (usually C:\Windows\System32) when the file exists there, so the lookup
// does not depend on PATH. Anything else is returned unchanged.
func resolveUtility(name string) string {
	if name == "" || filepath.Base(name) != name {
		return name
	}
	dir, err := windows.GetSystemDirectory()
	if err != nil {
		return name
	}
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); err != nil {
		return name
	}
	return candidate
}

func isPermissionErr(err error) bool {
	if errors.Is(err, os.ErrPermission) {
		return true
	}
	return errors.Is(err, windows.ERROR_ACCESS_DENIED) || errors.Is(err, windows.ERROR_ELEVATION_REQUIRED)
}
