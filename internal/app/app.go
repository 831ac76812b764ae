// Package app wires the keyedit components together: configuration,
// logging, the editing engine, file access, the external change watcher,
// the system clipboard mirror and the command loop.
package app

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/keyedit/internal/config"
	"github.com/dshills/keyedit/internal/engine"
	"github.com/dshills/keyedit/internal/fileio"
	"github.com/dshills/keyedit/internal/repl"
)

// Application is one editing session.
type Application struct {
	mu sync.Mutex

	// Core infrastructure
	config    *config.Config
	logger    *Logger
	logCloser io.Closer
	session   string

	// Editor components
	editor    *engine.EditBuffer
	watcher   *fileio.Watcher
	clipboard SystemClipboard

	// Watcher state, guarded by mu
	notices   []string
	ownWrites map[string]time.Time

	// savedRevision is the editor revision last written to disk, guarded by mu
	savedRevision uint64

	// I/O
	in  io.Reader
	out io.Writer

	// State
	running  atomic.Bool
	closed   bool // guarded by mu
	cancel   context.CancelFunc
	watchWg  sync.WaitGroup
	shutdown sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// Files are appended to the document on startup.
	Files []string

	// Debug enables debug logging.
	Debug bool

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Input and Output default to os.Stdin and os.Stdout.
	Input  io.Reader
	Output io.Writer

	// LogOutput overrides the configured log destination.
	LogOutput io.Writer

	// Clipboard overrides the system clipboard used when
	// editor.system_clipboard is enabled.
	Clipboard SystemClipboard
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:      opts,
		in:        opts.Input,
		out:       opts.Output,
		ownWrites: make(map[string]time.Time),
	}
	if app.in == nil {
		app.in = os.Stdin
	}
	if app.out == nil {
		app.out = os.Stdout
	}

	if err := app.bootstrap(); err != nil {
		app.closeLog()
		return nil, err
	}
	return app, nil
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Editor returns the editing engine.
func (app *Application) Editor() *engine.EditBuffer {
	return app.editor
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Session returns the identifier logged with every line of this session.
func (app *Application) Session() string {
	return app.session
}

// Run runs the command loop until the user exits, input ends or Shutdown
// is called. A normal end returns ErrQuit. Run after Shutdown returns
// ErrShutdown.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return ErrShutdown
	}
	app.cancel = cancel
	if app.watcher != nil {
		app.watchWg.Add(1)
		go app.watchLoop(ctx)
	}
	app.mu.Unlock()

	app.logger.Info("session started")
	loop := repl.New(app.editor, app, app.logger.WithComponent("repl"), app.in, app.out)
	if err := loop.Run(ctx); err != nil {
		return err
	}

	app.mu.Lock()
	closed := app.closed
	app.mu.Unlock()
	if closed {
		// Shutdown has already closed the log.
		return ErrQuit
	}
	if app.Modified() {
		app.logger.Warn("session ended with unsaved changes")
	}
	app.logger.Info("session ended")
	return ErrQuit
}

// Modified reports whether the document changed since it was last saved,
// or since startup if it was never saved.
func (app *Application) Modified() bool {
	rev := app.editor.Revision()
	app.mu.Lock()
	defer app.mu.Unlock()
	return rev != app.savedRevision
}

func (app *Application) markSaved(rev uint64) {
	app.mu.Lock()
	app.savedRevision = rev
	app.mu.Unlock()
}

// Shutdown stops the command loop and releases resources. It is safe to
// call more than once and from another goroutine.
func (app *Application) Shutdown() {
	app.shutdown.Do(func() {
		app.mu.Lock()
		app.closed = true
		cancel := app.cancel
		app.mu.Unlock()
		if cancel != nil {
			cancel()
		}

		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.logger.WithComponent("watcher").Warn("close: %v", err)
			}
			app.watchWg.Wait()
		}

		app.logger.Debug("shutdown complete")
		// Run may still be finishing. Its last lines must not reopen a
		// closed log file.
		app.logger.Disable()
		app.closeLog()
	})
}

func (app *Application) closeLog() {
	if app.logCloser != nil {
		_ = app.logCloser.Close()
		app.logCloser = nil
	}
}
