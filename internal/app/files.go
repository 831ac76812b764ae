package app

import (
	"errors"

	"github.com/dshills/keyedit/internal/fileio"
)

// Open appends the file at path to the document. On failure the document
// is unchanged.
func (app *Application) Open(path string) error {
	content, err := fileio.Load(path)
	if err != nil {
		app.logger.WithComponent("files").Warn("open %s: %v", path, err)
		return opError("open", path, err)
	}

	app.editor.AppendLoaded(content)
	app.logger.WithComponent("files").Info("opened %s (%d bytes)", path, len(content))
	app.watch(path)
	return nil
}

// Save writes the document to the configured default path.
func (app *Application) Save() error {
	return app.SaveAs(app.config.Files.DefaultSavePath)
}

// SaveAs writes the document to path, replacing any existing file.
func (app *Application) SaveAs(path string) error {
	rev := app.editor.Revision()
	content := app.editor.Text()

	app.markOwnWrite(path)
	if err := fileio.Save(path, content); err != nil {
		app.logger.WithComponent("files").Warn("save %s: %v", path, err)
		return opError("save", path, err)
	}

	app.markSaved(rev)
	app.logger.WithComponent("files").Info("saved %s (%d bytes)", path, len(content))
	app.watch(path)
	return nil
}

// Copied mirrors copied text to the system clipboard when enabled.
func (app *Application) Copied(text string) {
	if app.clipboard == nil {
		return
	}
	if err := app.clipboard.WriteAll(text); err != nil {
		app.logger.WithComponent("clipboard").Warn("mirror failed: %v", err)
	}
}

// opError reports a file failure without repeating the path.
func opError(op, path string, err error) *OperationError {
	var perr *fileio.PathError
	if errors.As(err, &perr) {
		err = perr.Err
	}
	return NewOperationError(op, path, err)
}
