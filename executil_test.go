package scanlaunch

import (
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/sa6mwa/scanlaunch/adapters/commandrunner"
	"github.com/sa6mwa/scanlaunch/adapters/mockrunner"
)

func TestStartDetachedNilStarter(t *testing.T) {
	if _, err := StartDetached(nil, exec.Command("scan.exe")); err == nil {
		t.Fatalf("expected error for nil starter")
	}
}

func TestStartDetachedNilCommand(t *testing.T) {
	if _, err := StartDetached(mockrunner.New(), nil); err == nil {
		t.Fatalf("expected error for nil command")
	}
}

func TestStartDetachedKeepsCallerSysProcAttr(t *testing.T) {
	cmd := exec.Command("scan.exe")
	attr := detachAttr()
	cmd.SysProcAttr = attr
	runner := mockrunner.New(func(c *exec.Cmd) error {
		if c.SysProcAttr != attr {
			t.Fatalf("SysProcAttr replaced")
		}
		return nil
	})
	pid, err := StartDetached(runner, cmd)
	if err != nil {
		t.Fatalf("StartDetached returned error: %v", err)
	}
	if pid != 0 {
		t.Fatalf("expected pid 0 from mock starter, got %d", pid)
	}
}

func TestStartDetachedPropagatesStartError(t *testing.T) {
	sentinel := errors.New("start failed")
	runner := mockrunner.New(func(*exec.Cmd) error { return sentinel })
	if _, err := StartDetached(runner, exec.Command("scan.exe")); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
}

func TestStartDetachedReturnsPid(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	cmd := exec.Command("/bin/sh", "-c", "exit 0")
	pid, err := StartDetached(commandrunner.Default, cmd)
	if err != nil {
		t.Fatalf("StartDetached returned error: %v", err)
	}
	if pid <= 0 {
		t.Fatalf("expected positive pid, got %d", pid)
	}
}
