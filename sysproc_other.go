//go:build !unix && !windows

package scanlaunch

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

func detachAttr() *syscall.SysProcAttr {
	return nil
}

func releaseProcess(cmd *exec.Cmd) {
	_ = cmd.Process.Release()
}

func resolveUtility(name string) string {
	return name
}

func isPermissionErr(err error) bool {
	return errors.Is(err, os.ErrPermission)
}
