// Package repl implements the numbered, line-oriented command surface of
// keyedit.
//
// Each round prints the cursor position, the document content and the
// command menu, then reads a command number and any arguments the command
// needs, one line each. Invalid input prints an error and re-prompts.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/keyedit/internal/engine"
)

// Editor is the part of the editing engine the command loop drives.
// *engine.EditBuffer implements it.
type Editor interface {
	Text() string
	Cursor() engine.ByteOffset
	Clipboard() string
	Insert(text string)
	Delete(length int) error
	MoveCursor(pos engine.ByteOffset) error
	Undo() error
	Redo() error
	UndoInfo() []engine.ActionInfo
	RedoInfo() []engine.ActionInfo
	Search(term string) []engine.ByteOffset
	ReplaceAll(term, replacement string) int
	Copy(start, end engine.ByteOffset) error
	Paste(pos engine.ByteOffset) error
}

// Host provides the file and clipboard collaborators around the editor.
type Host interface {
	// Open appends the file at path to the document.
	Open(path string) error

	// Save writes the document to the default save path.
	Save() error

	// SaveAs writes the document to path.
	SaveAs(path string) error

	// Copied is called after a successful copy with the clipboard text.
	Copied(text string)

	// Notices returns and clears pending messages for the user.
	Notices() []string
}

// Logger receives diagnostics the user does not see.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// ErrInvalidInput indicates a command number or numeric argument that
// could not be used.
var ErrInvalidInput = errors.New("invalid input")

// REPL is the interactive command loop.
type REPL struct {
	editor Editor
	host   Host
	logger Logger

	in   <-chan string
	done chan struct{}
	out  io.Writer

	errorf  func(format string, a ...any) string
	noticef func(format string, a ...any) string
}

// New creates a command loop reading commands from in and writing to out.
// host and logger may be nil.
func New(editor Editor, host Host, logger Logger, in io.Reader, out io.Writer) *REPL {
	if logger == nil {
		logger = nopLogger{}
	}
	done := make(chan struct{})
	return &REPL{
		editor:  editor,
		host:    host,
		logger:  logger,
		in:      readLines(in, done),
		done:    done,
		out:     out,
		errorf:  color.New(color.FgRed).SprintfFunc(),
		noticef: color.New(color.FgYellow).SprintfFunc(),
	}
}

// Run executes commands until the exit command, the end of input or ctx is
// cancelled. None of these is an error. Run may be called only once.
func (r *REPL) Run(ctx context.Context) error {
	defer close(r.done)

	for {
		r.printNotices()
		r.printStatus()
		r.printMenu()

		line, ok := r.readLine(ctx)
		if !ok {
			return nil
		}

		cmd, err := parseCommand(line)
		if err != nil {
			r.printError("Invalid input given.")
			r.logger.Debug("bad command %q", line)
			continue
		}
		if cmd == CommandExit {
			return nil
		}

		if err := r.execute(ctx, cmd); err != nil {
			if errors.Is(err, errEndOfInput) {
				return nil
			}
			if errors.Is(err, ErrInvalidInput) {
				r.printError("Invalid input given.")
				continue
			}
			r.printError("Error: %v", err)
		}
	}
}

// errEndOfInput stops the loop when input ends inside a command.
var errEndOfInput = errors.New("end of input")

func (r *REPL) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-r.in:
		return line, ok
	}
}

// prompt prints msg and reads one argument line.
func (r *REPL) prompt(ctx context.Context, msg string) (string, error) {
	fmt.Fprintln(r.out, msg)
	line, ok := r.readLine(ctx)
	if !ok {
		return "", errEndOfInput
	}
	return line, nil
}

// promptInt prints msg and reads one integer argument.
func (r *REPL) promptInt(ctx context.Context, msg string) (int, error) {
	line, err := r.prompt(ctx, msg)
	if err != nil {
		return 0, err
	}
	n, err := parseInt(line)
	if err != nil {
		r.logger.Debug("bad number %q", line)
		return 0, err
	}
	return n, nil
}

func (r *REPL) printStatus() {
	fmt.Fprintf(r.out, "Position of cursor: %d\n", r.editor.Cursor())
	fmt.Fprintf(r.out, "Content of Editor: %s\n", r.editor.Text())
}

func (r *REPL) printMenu() {
	fmt.Fprintln(r.out, "Please choose a command: insert, delete, move, undo, redo, open, save, save as, search, replace, copy, paste, exit")
	for _, c := range Commands() {
		fmt.Fprintf(r.out, "Please type %d to %s\n", c, c.Description())
	}
}

func (r *REPL) printNotices() {
	if r.host == nil {
		return
	}
	for _, n := range r.host.Notices() {
		fmt.Fprintln(r.out, r.noticef("%s", n))
	}
}

func (r *REPL) printError(format string, args ...any) {
	fmt.Fprintln(r.out, r.errorf(format, args...))
}

// readLines delivers lines from r without their line terminators. The
// channel is closed at end of input. A final line without a newline is
// still delivered. Reading stops once done is closed.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" || err == nil {
				line = strings.TrimSuffix(line, "\n")
				line = strings.TrimSuffix(line, "\r")
				select {
				case ch <- line:
				case <-done:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
