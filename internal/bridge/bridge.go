package bridge

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sa6mwa/scanlaunch"
	"go.uber.org/zap"
)

const InvocationHeader = "X-Invocation-ID"

// Commands is what the bridge needs from *scanlaunch.Launcher.
type Commands interface {
	OpenScannerUI() (string, error)
	SpawnScannerApp(path string) (string, error)
	Platform() string
	Supported() bool
}

type Options struct {
	Logger         *zap.Logger
	AllowOrigins   []string
	MetricsPath    string
	MetricsHandler http.Handler
}

type Server struct {
	commands Commands
	logger   *zap.Logger
	origins  []string
	router   *gin.Engine
}

type SpawnRequest struct {
	Path string `json:"path"`
}

// InvokeResponse carries either Value (ok) or Error and Kind.
type InvokeResponse struct {
	OK    bool   `json:"ok"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Platform  string `json:"platform"`
	Supported bool   `json:"supported"`
}

func NewServer(commands Commands, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		commands: commands,
		logger:   logger,
		origins:  opts.AllowOrigins,
		router:   router,
	}
	router.Use(server.cors)

	router.GET("/healthz", server.handleHealth)

	invoke := router.Group("/api/invoke", server.requireJSON)
	invoke.POST("/"+scanlaunch.CommandOpenScannerUI, server.handleOpenScannerUI)
	invoke.POST("/"+scanlaunch.CommandSpawnScannerApp, server.handleSpawnScannerApp)

	if opts.MetricsHandler != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(opts.MetricsHandler))
	}
	return server
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("bridge listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("bridge stopped")
	return nil
}

// cors rejects browser requests from origins outside the allow list.
// Requests without an Origin header (CLI tools, same-process clients) pass.
func (s *Server) cors(c *gin.Context) {
	origin := c.GetHeader("Origin")
	c.Writer.Header().Add("Vary", "Origin")
	if origin != "" {
		if !slices.Contains(s.origins, origin) {
			s.logger.Info("rejected origin",
				zap.String("origin", origin),
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusForbidden, InvokeResponse{Error: "origin not allowed", Kind: "forbidden"})
			return
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
	}
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	c.Writer.Header().Set("Access-Control-Expose-Headers", InvocationHeader)
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

// requireJSON refuses anything but application/json, so a browser always has
// to send a preflight before it can invoke a command.
func (s *Server) requireJSON(c *gin.Context) {
	if c.ContentType() != "application/json" {
		c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, InvokeResponse{
			Error: "content type must be application/json",
			Kind:  "unsupported_media_type",
		})
		return
	}
	c.Next()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Platform:  s.commands.Platform(),
		Supported: s.commands.Supported(),
	})
}

func (s *Server) handleOpenScannerUI(c *gin.Context) {
	s.respond(c, scanlaunch.CommandOpenScannerUI, "", func() (string, error) {
		return s.commands.OpenScannerUI()
	})
}

func (s *Server) handleSpawnScannerApp(c *gin.Context) {
	var req SpawnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		id := uuid.NewString()
		c.Header(InvocationHeader, id)
		s.logger.Info("rejected invocation",
			zap.String("invocation", id),
			zap.String("command", scanlaunch.CommandSpawnScannerApp),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, InvokeResponse{Error: "invalid request body: " + err.Error(), Kind: "bad_request"})
		return
	}
	s.respond(c, scanlaunch.CommandSpawnScannerApp, req.Path, func() (string, error) {
		return s.commands.SpawnScannerApp(req.Path)
	})
}

func (s *Server) respond(c *gin.Context, command, target string, call func() (string, error)) {
	id := uuid.NewString()
	c.Header(InvocationHeader, id)
	fields := []zap.Field{
		zap.String("invocation", id),
		zap.String("command", command),
	}
	if target != "" {
		fields = append(fields, zap.String("target", target))
	}

	value, err := call()
	if err != nil {
		kind := scanlaunch.Kind(err)
		s.logger.Debug("invocation failed", append(fields, zap.String("kind", kind), zap.Error(err))...)
		c.JSON(statusFor(err), InvokeResponse{Error: err.Error(), Kind: kind})
		return
	}
	s.logger.Info("invocation succeeded", append(fields, zap.String("value", value))...)
	c.JSON(http.StatusOK, InvokeResponse{OK: true, Value: value})
}

func statusFor(err error) int {
	if errors.Is(err, scanlaunch.ErrUnsupportedPlatform) {
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
