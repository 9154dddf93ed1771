//go:build unix

package scanlaunch

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// releaseProcess reaps the child in the background so it never lingers as
// a zombie. The exit status is discarded.
func releaseProcess(cmd *exec.Cmd) {
	go func() {
		_ = cmd.Wait()
	}()
}

func resolveUtility(name string) string {
	return name
}

func isPermissionErr(err error) bool {
	if errors.Is(err, os.ErrPermission) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr.Err, unix.EACCES) || errors.Is(pathErr.Err, unix.EPERM)
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return errors.Is(execErr.Err, unix.EACCES) || errors.Is(execErr.Err, unix.EPERM)
	}
	return errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM)
}
