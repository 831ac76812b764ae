package app

import (
	"errors"

	"github.com/dshills/keyedit/internal/config"
	"github.com/dshills/keyedit/internal/engine"
	"github.com/dshills/keyedit/internal/fileio"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logger
	app.initLogger()

	// 3. Editing engine
	app.editor = engine.New(
		engine.WithUndoablePaste(cfg.Editor.UndoablePaste),
		engine.WithMaxUndoEntries(cfg.Editor.MaxUndo),
	)

	// 4. Watcher (optional, non-fatal)
	if cfg.Files.Watch {
		w, err := fileio.NewWatcher(fileio.DefaultEventBuffer)
		if err != nil {
			app.logger.WithComponent("watcher").Warn("disabled: %v", err)
		} else {
			app.watcher = w
		}
	}

	// 5. System clipboard mirror (optional)
	if cfg.Editor.SystemClipboard {
		app.clipboard = app.opts.Clipboard
		if app.clipboard == nil {
			app.clipboard = OSClipboard()
		}
	}

	// 6. Startup files. Failures are reported, not fatal.
	for _, path := range app.opts.Files {
		if err := app.Open(path); err != nil {
			var oe *OperationError
			if errors.As(err, &oe) {
				err = oe.WithContext("startup")
			}
			app.addNotice(err.Error())
		}
	}

	app.markSaved(app.editor.Revision())
	app.logger.Debug("bootstrap complete: %s", cfg)
	return nil
}

// initLogger builds the session logger. Flags override the configured level.
func (app *Application) initLogger() {
	level := ParseLogLevel(app.config.Logging.Level)
	if app.opts.LogLevel != "" {
		level = ParseLogLevel(app.opts.LogLevel)
	}
	if app.opts.Debug {
		level = LogLevelDebug
	}

	output := app.opts.LogOutput
	if output == nil {
		output, app.logCloser = openLogOutput(app.config.Logging)
	}

	app.logger, app.session = newSessionLogger(level, output)
}
