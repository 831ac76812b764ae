package repl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/keyedit/internal/engine"
)

// Command is a menu entry, numbered as the user types it.
type Command int

// Menu commands.
const (
	CommandInsert Command = iota + 1
	CommandDelete
	CommandMove
	CommandUndo
	CommandRedo
	CommandSearch
	CommandReplace
	CommandOpen
	CommandSave
	CommandSaveAs
	CommandCopy
	CommandPaste
	CommandExit
)

// Commands returns every command in menu order.
func Commands() []Command {
	cmds := make([]Command, 0, CommandExit)
	for c := CommandInsert; c <= CommandExit; c++ {
		cmds = append(cmds, c)
	}
	return cmds
}

// Description returns the menu text for the command.
func (c Command) Description() string {
	switch c {
	case CommandInsert:
		return "insert text"
	case CommandDelete:
		return "delete text"
	case CommandMove:
		return "move cursor"
	case CommandUndo:
		return "undo action"
	case CommandRedo:
		return "redo action"
	case CommandSearch:
		return "search"
	case CommandReplace:
		return "replace"
	case CommandOpen:
		return "open and read in a file"
	case CommandSave:
		return "save file (to default path)"
	case CommandSaveAs:
		return "save file as to a new file"
	case CommandCopy:
		return "copy text"
	case CommandPaste:
		return "paste copied text"
	case CommandExit:
		return "exit"
	default:
		return "unknown"
	}
}

// parseCommand reads a command number.
func parseCommand(line string) (Command, error) {
	n, err := parseInt(line)
	if err != nil {
		return 0, err
	}
	c := Command(n)
	if c < CommandInsert || c > CommandExit {
		return 0, fmt.Errorf("%w: no command %d", ErrInvalidInput, n)
	}
	return c, nil
}

func parseInt(line string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, line)
	}
	return n, nil
}

// execute runs one command, reading its arguments.
// Engine rejections are not shown to the user.
func (r *REPL) execute(ctx context.Context, cmd Command) error {
	switch cmd {
	case CommandInsert:
		text, err := r.prompt(ctx, "Please enter the text to insert: ")
		if err != nil {
			return err
		}
		r.editor.Insert(text)

	case CommandDelete:
		n, err := r.promptInt(ctx, "Please enter the specified number of characters to delete: ")
		if err != nil {
			return err
		}
		r.ignored(cmd, r.editor.Delete(n))

	case CommandMove:
		pos, err := r.promptInt(ctx, "Please enter the new cursor position: ")
		if err != nil {
			return err
		}
		r.ignored(cmd, r.editor.MoveCursor(pos))

	case CommandUndo:
		if err := r.editor.Undo(); err != nil {
			r.ignored(cmd, err)
		} else {
			r.logHistory("undid", r.editor.RedoInfo(), r.editor.UndoInfo())
		}

	case CommandRedo:
		if err := r.editor.Redo(); err != nil {
			r.ignored(cmd, err)
		} else {
			r.logHistory("redid", r.editor.UndoInfo(), r.editor.RedoInfo())
		}

	case CommandSearch:
		term, err := r.prompt(ctx, "Please enter the term to search: ")
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Term found at positions: %s\n", formatPositions(r.editor.Search(term)))

	case CommandReplace:
		term, err := r.prompt(ctx, "Please enter the term to replace: ")
		if err != nil {
			return err
		}
		replacement, err := r.prompt(ctx, "Please enter the replacement text: ")
		if err != nil {
			return err
		}
		n := r.editor.ReplaceAll(term, replacement)
		r.logger.Debug("replaced %d occurrences of %q", n, term)

	case CommandOpen:
		path, err := r.prompt(ctx, "Please enter filepath to open: ")
		if err != nil {
			return err
		}
		if r.host != nil {
			return r.host.Open(path)
		}

	case CommandSave:
		if r.host != nil {
			return r.host.Save()
		}

	case CommandSaveAs:
		path, err := r.prompt(ctx, "Please enter the file path to save as to: ")
		if err != nil {
			return err
		}
		if r.host != nil {
			return r.host.SaveAs(path)
		}

	case CommandCopy:
		fmt.Fprintln(r.out, "Please enter start and end positions to copy: ")
		start, err := r.promptInt(ctx, "Please enter start: ")
		if err != nil {
			return err
		}
		end, err := r.promptInt(ctx, "Please enter end: ")
		if err != nil {
			return err
		}
		if err := r.editor.Copy(start, end); err != nil {
			r.ignored(cmd, err)
		} else if r.host != nil {
			r.host.Copied(r.editor.Clipboard())
		}

	case CommandPaste:
		pos, err := r.promptInt(ctx, "Please enter position to paste: ")
		if err != nil {
			return err
		}
		r.ignored(cmd, r.editor.Paste(pos))
	}
	return nil
}

// ignored logs an engine rejection. Out-of-range arguments leave the
// document unchanged without telling the user, except for history that no
// longer matches the document, which is worth a warning.
func (r *REPL) ignored(cmd Command, err error) {
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrStaleHistory):
		r.logger.Warn("%s: %v", cmd.Description(), err)
	default:
		r.logger.Debug("%s ignored: %v", cmd.Description(), err)
	}
}

// logHistory records the entry that just moved between the stacks. moved
// is the stack it landed on, left the one it came from.
func (r *REPL) logHistory(verb string, moved, left []engine.ActionInfo) {
	if len(moved) == 0 {
		return
	}
	r.logger.Debug("%s %s (%d left)", verb, moved[0].Description, len(left))
}

// formatPositions renders offsets as [a, b, c].
func formatPositions(positions []engine.ByteOffset) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
