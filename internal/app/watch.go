package app

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/dshills/keyedit/internal/fileio"
)

// ownWriteWindow is how long after a save change events for the saved file
// are attributed to the editor itself.
const ownWriteWindow = time.Second

// watch starts reporting external changes to path, if watching is enabled.
func (app *Application) watch(path string) {
	if app.watcher == nil {
		return
	}
	err := app.watcher.Watch(path)
	if err != nil && !errors.Is(err, fileio.ErrAlreadyWatching) {
		app.logger.WithComponent("watcher").Warn("watch %s: %v", path, err)
	}
}

// markOwnWrite suppresses the change events a save is about to cause.
func (app *Application) markOwnWrite(path string) {
	if app.watcher == nil {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	app.mu.Lock()
	app.ownWrites[abs] = time.Now().Add(ownWriteWindow)
	app.mu.Unlock()
}

func (app *Application) watchLoop(ctx context.Context) {
	defer app.watchWg.Done()

	log := app.logger.WithComponent("watcher")
	events := app.watcher.Events()
	errs := app.watcher.Errors()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			app.handleChange(ev)
		case err, ok := <-errs:
			if !ok {
				return
			}
			log.Warn("%v", err)
		}
	}
}

// handleChange queues a notice for a change made by another program.
func (app *Application) handleChange(ev fileio.ChangeEvent) {
	app.mu.Lock()
	until, own := app.ownWrites[ev.Path]
	if own && !ev.Timestamp.Before(until) {
		delete(app.ownWrites, ev.Path)
		own = false
	}
	app.mu.Unlock()

	if own && (ev.Op.Has(fileio.OpWrite) || ev.Op.Has(fileio.OpCreate)) {
		app.logger.WithComponent("watcher").Debug("ignoring own write to %s", ev.Path)
		return
	}

	app.logger.WithComponent("watcher").Info("%s changed on disk (%s)", ev.Path, ev.Op)
	app.addNotice("file changed on disk: " + ev.Path)
}

func (app *Application) addNotice(msg string) {
	app.mu.Lock()
	defer app.mu.Unlock()
	for _, n := range app.notices {
		if n == msg {
			return
		}
	}
	app.notices = append(app.notices, msg)
}

// Notices returns and clears the messages waiting for the next prompt.
func (app *Application) Notices() []string {
	app.mu.Lock()
	defer app.mu.Unlock()
	n := app.notices
	app.notices = nil
	return n
}
