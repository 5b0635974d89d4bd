package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool

	// Streams used for "-" paths and rendered output
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Common timeouts
	DefaultTimeout time.Duration

	// Progress reporting
	ProgressCallback func(message string, percent int)

	logger *slog.Logger
}

// NewContext creates a new application context bound to the process streams
func NewContext() *Context {
	return &Context{
		Context:        context.Background(),
		OutputFormat:   "table",
		Stdin:          os.Stdin,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		DefaultTimeout: 30 * time.Second,
	}
}

// WithTimeout creates a context with timeout
func (c *Context) WithTimeout(timeout time.Duration) (*Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Context, timeout)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// SetProgress sets the progress callback function
func (c *Context) SetProgress(callback func(string, int)) {
	c.ProgressCallback = callback
}

// Progress reports progress if callback is set
func (c *Context) Progress(message string, percent int) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(message, percent)
	}
}

// SetLogger replaces the logger derived from the verbosity flags
func (c *Context) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// Logger returns the structured logger. Without an explicit logger, one is
// built on Stderr at a level derived from Verbose and Quiet.
func (c *Context) Logger() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	level := slog.LevelWarn
	switch {
	case c.Quiet:
		level = slog.LevelError
	case c.Verbose:
		level = slog.LevelDebug
	}
	w := c.Stderr
	if w == nil {
		w = io.Discard
	}
	c.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return c.logger
}

// Log outputs a message based on verbosity settings
func (c *Context) Log(message string, args ...any) {
	c.Logger().Debug(message, args...)
}

// Error logs at error level, which quiet mode still shows
func (c *Context) Error(message string, args ...any) {
	c.Logger().Error(message, args...)
}
