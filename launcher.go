// Package scanlaunch exposes two fire-and-forget commands to a desktop
// front-end: opening the operating system's scanner applet and spawning an
// arbitrary scanner application by path. Both only work on Windows; on any
// other platform they fail immediately with an error matching
// ErrUnsupportedPlatform.
//
//	out, err := scanlaunch.OpenScannerUI()
//	if err != nil {
//		return err // "Scanner UI launch not supported on this OS" on Linux
//	}
//	fmt.Println(out) // opened
package scanlaunch

import (
	"os/exec"
	"runtime"
	"time"

	"github.com/sa6mwa/scanlaunch/adapters/commandrunner"
	"github.com/sa6mwa/scanlaunch/port"
	"go.uber.org/zap"
)

// SupportedPlatform is the only GOOS where the commands attempt process
// creation.
const SupportedPlatform = "windows"

// DefaultScannerUtility is the Windows Image Acquisition wizard.
const DefaultScannerUtility = "wiaacmgr.exe"

// Observer is notified after every command invocation, successful or not.
type Observer interface {
	Observe(command string, elapsed time.Duration, err error)
}

type Launcher struct {
	hostOS   string
	platform string
	utility  string
	starter  port.ProcessStarter
	logger   *zap.Logger
	observer Observer
}

type Option func(*Launcher)

// WithPlatform sets the GOOS the launcher reports and gates on. It can only
// disable the commands: on a host that is not SupportedPlatform they stay
// unsupported whatever goos is.
func WithPlatform(goos string) Option {
	return func(l *Launcher) {
		if goos != "" {
			l.platform = goos
		}
	}
}

func WithStarter(starter port.ProcessStarter) Option {
	return func(l *Launcher) {
		if starter != nil {
			l.starter = starter
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Launcher) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(l *Launcher) {
		l.observer = observer
	}
}

// WithScannerUtility replaces DefaultScannerUtility as the executable
// started by OpenScannerUI.
func WithScannerUtility(name string) Option {
	return func(l *Launcher) {
		if name != "" {
			l.utility = name
		}
	}
}

// New returns a Launcher for runtime.GOOS using os/exec, a no-op logger and
// no observer unless overridden by opts.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		hostOS:   runtime.GOOS,
		platform: runtime.GOOS,
		utility:  DefaultScannerUtility,
		starter:  commandrunner.Default,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Platform returns the host GOOS when it is unsupported, otherwise the
// configured platform.
func (l *Launcher) Platform() string {
	if l.hostOS != SupportedPlatform {
		return l.hostOS
	}
	return l.platform
}

func (l *Launcher) Supported() bool {
	return l.hostOS == SupportedPlatform && l.platform == SupportedPlatform
}

// OpenScannerUI starts the scanner utility without arguments and returns
// Opened once the OS has created the process.
func (l *Launcher) OpenScannerUI() (string, error) {
	return l.spawn(CommandOpenScannerUI, func() string { return resolveUtility(l.utility) }, Opened)
}

// SpawnScannerApp starts the executable at path without arguments and
// returns Spawned once the OS has created the process. The path is passed
// to the OS untouched.
func (l *Launcher) SpawnScannerApp(path string) (string, error) {
	return l.spawn(CommandSpawnScannerApp, func() string { return path }, Spawned)
}

func (l *Launcher) spawn(command string, target func() string, success string) (string, error) {
	start := time.Now()
	if !l.Supported() {
		err := &PlatformError{Command: command, Platform: l.Platform()}
		l.logger.Debug("command not supported",
			zap.String("command", command),
			zap.String("platform", l.Platform()))
		l.observe(command, start, err)
		return "", err
	}
	name := target()
	pid, err := StartDetached(l.starter, exec.Command(name))
	if err != nil {
		serr := &SpawnError{Command: command, Target: name, Err: err}
		l.logger.Debug("process creation failed",
			zap.String("command", command),
			zap.String("target", name),
			zap.Error(err))
		l.observe(command, start, serr)
		return "", serr
	}
	l.logger.Debug("process created",
		zap.String("command", command),
		zap.String("target", name),
		zap.Int("pid", pid))
	l.observe(command, start, nil)
	return success, nil
}

func (l *Launcher) observe(command string, start time.Time, err error) {
	if l.observer == nil {
		return
	}
	l.observer.Observe(command, time.Since(start), err)
}

var defaultLauncher = New()

// OpenScannerUI calls OpenScannerUI on a Launcher built with New().
func OpenScannerUI() (string, error) {
	return defaultLauncher.OpenScannerUI()
}

// SpawnScannerApp calls SpawnScannerApp on a Launcher built with New().
func SpawnScannerApp(path string) (string, error) {
	return defaultLauncher.SpawnScannerApp(path)
}
