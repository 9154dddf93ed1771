package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sa6mwa/scanlaunch"
	"github.com/sa6mwa/scanlaunch/internal/bridge"
	"github.com/sa6mwa/scanlaunch/internal/config"
	"github.com/sa6mwa/scanlaunch/internal/exitcodes"
	"github.com/sa6mwa/scanlaunch/internal/logging"
	"github.com/sa6mwa/scanlaunch/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli holds the flag values and the state PersistentPreRunE prepares for
// one execution of the root command.
type cli struct {
	configPath string
	verbose    bool
	platform   string
	listen     string

	cfg    *config.Config
	logger *zap.Logger
}

// exitError carries the process exit code out of RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:   "scanlaunch",
		Short: "Launch the Windows scanner applet or a scanner application",
		Long: `scanlaunch starts the Windows Image Acquisition wizard (wiaacmgr.exe) or an
arbitrary scanner application by path. Processes are started detached and
never waited on.

Use "scanlaunch serve" to expose both commands to a web front-end over HTTP.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	openScannerUICmd := &cobra.Command{
		Use:   "open-scanner-ui",
		Short: "Open the operating system scanner applet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCommand(cmd.OutOrStdout(), func(l *scanlaunch.Launcher) (string, error) {
				return l.OpenScannerUI()
			})
		},
	}

	spawnCmd := &cobra.Command{
		Use:   "spawn <path>",
		Short: "Start the executable at path without waiting for it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCommand(cmd.OutOrStdout(), func(l *scanlaunch.Launcher) (string, error) {
				return l.SpawnScannerApp(args[0])
			})
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve both commands over HTTP for a web front-end",
		Args:  cobra.NoArgs,
		RunE:  c.serve,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&c.platform, "platform", "", "Treat the host as this GOOS; can only disable the commands")
	serveCmd.Flags().StringVarP(&c.listen, "listen", "l", "", "Listen address (default "+config.DefaultListen+")")

	rootCmd.AddCommand(openScannerUICmd)
	rootCmd.AddCommand(spawnCmd)
	rootCmd.AddCommand(serveCmd)
	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.Load(c.configPath)
		if err != nil {
			return &exitError{code: exitcodes.InvalidConfig, err: err}
		}
	} else {
		c.cfg = config.Default()
	}
	if c.platform != "" {
		c.cfg.Platform = c.platform
	}
	if c.listen != "" {
		c.cfg.Listen = c.listen
	}
	if err := c.cfg.Validate(); err != nil {
		return &exitError{code: exitcodes.InvalidConfig, err: err}
	}
	c.logger, err = logging.New(c.verbose || c.cfg.Debug)
	return err
}

func (c *cli) newLauncher(opts ...scanlaunch.Option) *scanlaunch.Launcher {
	base := []scanlaunch.Option{
		scanlaunch.WithPlatform(c.cfg.Platform),
		scanlaunch.WithScannerUtility(c.cfg.ScannerUtility),
		scanlaunch.WithLogger(c.logger),
	}
	return scanlaunch.New(append(base, opts...)...)
}

func (c *cli) runCommand(w io.Writer, call func(*scanlaunch.Launcher) (string, error)) error {
	value, err := call(c.newLauncher())
	if err != nil {
		return &exitError{code: exitCodeFor(err), err: err}
	}
	fmt.Fprintln(w, value)
	return nil
}

func (c *cli) serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !c.verbose && !c.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	opts := bridge.Options{
		Logger:       c.logger,
		AllowOrigins: c.cfg.CORS.AllowOrigins,
		MetricsPath:  c.cfg.Metrics.Path,
	}
	var launcherOpts []scanlaunch.Option
	if c.cfg.Metrics.Enabled {
		recorder := metrics.New()
		launcherOpts = append(launcherOpts, scanlaunch.WithObserver(recorder))
		opts.MetricsHandler = recorder.Handler()
	}
	l := c.newLauncher(launcherOpts...)
	if !l.Supported() {
		c.logger.Warn("commands are not supported on this platform, every invocation will fail",
			zap.String("platform", l.Platform()))
	}
	return bridge.NewServer(l, opts).Run(ctx, c.cfg.Listen)
}

func exitCodeFor(err error) int {
	var ee *exitError
	switch {
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, scanlaunch.ErrUnsupportedPlatform):
		return exitcodes.Unsupported
	case errors.As(err, new(*scanlaunch.SpawnError)):
		return exitcodes.SpawnFailed
	default:
		return exitcodes.Usage
	}
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return exitCodeFor(err)
	}
	return exitcodes.Success
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
