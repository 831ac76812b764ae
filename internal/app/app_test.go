package app

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keyedit/internal/config"
	"github.com/dshills/keyedit/internal/fileio"
)

type fakeClipboard struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

// syncBuffer is a bytes.Buffer safe for the watcher goroutine to log into.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// writeConfig writes a TOML configuration file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keyedit.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestApp(t *testing.T, opts Options) (*Application, *syncBuffer) {
	t.Helper()
	logs := &syncBuffer{}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	if opts.Input == nil {
		opts.Input = strings.NewReader("")
	}
	opts.LogOutput = logs

	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(app.Shutdown)
	return app, logs
}

func TestNew_Defaults(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	if app.Editor() == nil {
		t.Fatal("Editor() is nil")
	}
	if app.Config().Files.DefaultSavePath != config.DefaultSavePath {
		t.Errorf("DefaultSavePath = %q", app.Config().Files.DefaultSavePath)
	}
	if _, err := uuid.Parse(app.Session()); err != nil {
		t.Errorf("Session() = %q is not a UUID: %v", app.Session(), err)
	}
	if app.watcher != nil {
		t.Error("watcher should be off by default")
	}
	if app.clipboard != nil {
		t.Error("clipboard mirror should be off by default")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "[logging]\nlevel = \"chatty\"\n")

	_, err := New(Options{ConfigPath: path, LogOutput: io.Discard})
	var ierr *InitError
	if !errors.As(err, &ierr) || ierr.Component != "config" {
		t.Fatalf("expected config InitError, got %v", err)
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	app, logs := newTestApp(t, Options{
		Input:  strings.NewReader("1\nabc\n13\n"),
		Output: &out,
	})

	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() error = %v, want ErrQuit", err)
	}
	if app.Editor().Text() != "abc" {
		t.Errorf("Text() = %q, want %q", app.Editor().Text(), "abc")
	}
	if !strings.Contains(out.String(), "Content of Editor: abc") {
		t.Errorf("output missing content:\n%s", out.String())
	}
	if !strings.Contains(logs.String(), "session="+app.Session()) {
		t.Errorf("log lines lack session field:\n%s", logs.String())
	}

	if err := app.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestShutdown_StopsRun(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	app, _ := newTestApp(t, Options{Input: pr})

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	// Run may not have installed its cancel func yet; retry until it returns.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case err := <-done:
			if !errors.Is(err, ErrQuit) {
				t.Errorf("Run() error = %v, want ErrQuit", err)
			}
			app.Shutdown()
			return
		case <-deadline:
			t.Fatal("Run did not return after Shutdown")
		case <-time.After(10 * time.Millisecond):
			app.mu.Lock()
			cancel := app.cancel
			app.mu.Unlock()
			if cancel != nil {
				app.Shutdown()
			}
		}
	}
}

func TestShutdown_NoLoggingAfterClose(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	app, logs := newTestApp(t, Options{Input: pr})

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	deadline := time.After(2 * time.Second)
	for stopped := false; !stopped; {
		select {
		case <-done:
			stopped = true
		case <-deadline:
			t.Fatal("Run did not return after Shutdown")
		case <-time.After(10 * time.Millisecond):
			app.mu.Lock()
			cancel := app.cancel
			app.mu.Unlock()
			if cancel != nil {
				app.Shutdown()
			}
		}
	}

	app.Logger().Error("late line")
	out := logs.String()
	if strings.Contains(out, "session ended") || strings.Contains(out, "late line") {
		t.Errorf("logged after the log was closed:\n%s", out)
	}
}

func TestModified(t *testing.T) {
	app, logs := newTestApp(t, Options{Input: strings.NewReader("1\nabc\n13\n")})
	if app.Modified() {
		t.Error("new document should be unmodified")
	}

	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() error = %v", err)
	}
	if !app.Modified() {
		t.Error("insert should mark the document modified")
	}
	if !strings.Contains(logs.String(), "session ended with unsaved changes") {
		t.Errorf("missing unsaved changes warning:\n%s", logs.String())
	}

	if err := app.SaveAs(filepath.Join(t.TempDir(), "out.txt")); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	if app.Modified() {
		t.Error("save should clear the modified state")
	}
	app.Editor().Insert("x")
	if !app.Modified() {
		t.Error("edit after save should mark the document modified")
	}
}

func TestModified_StartupFilesAreUnmodified(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	app, _ := newTestApp(t, Options{Files: []string{path}})
	if app.Modified() {
		t.Error("document loaded at startup should be unmodified")
	}
}

func TestRun_AfterShutdown(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	app.Shutdown()

	if err := app.Run(); !errors.Is(err, ErrShutdown) {
		t.Errorf("Run() error = %v, want ErrShutdown", err)
	}
}

func TestOpenAndSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(in, []byte("one\r\ntwo"), 0644); err != nil {
		t.Fatal(err)
	}
	defaultPath := filepath.Join(dir, "results.txt")
	cfgPath := writeConfig(t, "[files]\ndefault_save_path = \""+filepath.ToSlash(defaultPath)+"\"\n")

	app, _ := newTestApp(t, Options{ConfigPath: cfgPath})

	if err := app.Open(in); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := app.Open(in); err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	want := "one\ntwo\none\ntwo\n"
	if app.Editor().Text() != want {
		t.Errorf("Text() = %q, want %q", app.Editor().Text(), want)
	}

	if err := app.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := os.ReadFile(defaultPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != want {
		t.Errorf("saved %q, want %q", got, want)
	}

	other := filepath.Join(dir, "other.txt")
	if err := os.WriteFile(other, []byte("much longer existing content\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := app.SaveAs(other); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	got, _ = os.ReadFile(other)
	if string(got) != want {
		t.Errorf("SaveAs wrote %q, want %q", got, want)
	}
}

func TestOpen_Errors(t *testing.T) {
	app, logs := newTestApp(t, Options{})
	app.Editor().Insert("keep")

	missing := filepath.Join(t.TempDir(), "missing.txt")
	err := app.Open(missing)
	if !errors.Is(err, fileio.ErrNotFound) {
		t.Fatalf("Open() error = %v, want ErrNotFound", err)
	}
	var operr *OperationError
	if !errors.As(err, &operr) || operr.Op != "open" || operr.Target != missing {
		t.Errorf("expected open OperationError, got %#v", err)
	}
	if err.Error() != "open "+missing+": not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if app.Editor().Text() != "keep" || !app.Editor().CanUndo() {
		t.Error("failed open changed the editor")
	}
	if !strings.Contains(logs.String(), "[WARN]") {
		t.Errorf("failed open not logged:\n%s", logs.String())
	}
}

func TestSave_Errors(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	err := app.SaveAs(t.TempDir())
	if !errors.Is(err, fileio.ErrIsDirectory) {
		t.Errorf("SaveAs(dir) error = %v, want ErrIsDirectory", err)
	}
	err = app.SaveAs("")
	if !errors.Is(err, fileio.ErrEmptyPath) {
		t.Errorf("SaveAs(\"\") error = %v, want ErrEmptyPath", err)
	}
}

func TestNew_StartupFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	if err := os.WriteFile(good, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.txt")

	app, _ := newTestApp(t, Options{Files: []string{good, bad}})

	if app.Editor().Text() != "hello\n" {
		t.Errorf("Text() = %q, want %q", app.Editor().Text(), "hello\n")
	}
	notices := app.Notices()
	if len(notices) != 1 || !strings.Contains(notices[0], bad) || !strings.Contains(notices[0], "(startup)") {
		t.Errorf("Notices() = %q", notices)
	}
	if len(app.Notices()) != 0 {
		t.Error("Notices() should drain")
	}
}

func TestUndoablePasteConfig(t *testing.T) {
	cfgPath := writeConfig(t, "[editor]\nundoable_paste = true\nmax_undo = 2\n")
	app, _ := newTestApp(t, Options{ConfigPath: cfgPath})
	ed := app.Editor()

	ed.Insert("abc")
	if err := ed.Copy(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := ed.Paste(3); err != nil {
		t.Fatal(err)
	}
	if err := ed.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if ed.Text() != "abc" {
		t.Errorf("Text() = %q, want %q", ed.Text(), "abc")
	}

	ed.Insert("x")
	ed.Insert("y")
	ed.Insert("z")
	if ed.UndoCount() != 2 {
		t.Errorf("UndoCount() = %d, want 2", ed.UndoCount())
	}
}

func TestCopied_SystemClipboard(t *testing.T) {
	cfgPath := writeConfig(t, "[editor]\nsystem_clipboard = true\n")
	cb := &fakeClipboard{}
	app, _ := newTestApp(t, Options{
		ConfigPath: cfgPath,
		Clipboard:  cb,
		Input:      strings.NewReader("1\nhello\n11\n1\n3\n13\n"),
	})

	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() error = %v", err)
	}
	if len(cb.texts) != 1 || cb.texts[0] != "ell" {
		t.Errorf("clipboard got %q, want [ell]", cb.texts)
	}
}

func TestCopied_Failure(t *testing.T) {
	cfgPath := writeConfig(t, "[editor]\nsystem_clipboard = true\n")
	cb := &fakeClipboard{err: ErrClipboardUnsupported}
	app, logs := newTestApp(t, Options{ConfigPath: cfgPath, Clipboard: cb})

	app.Copied("text")
	if !strings.Contains(logs.String(), "mirror failed") {
		t.Errorf("clipboard failure not logged:\n%s", logs.String())
	}
}

func TestCopied_Disabled(t *testing.T) {
	cb := &fakeClipboard{}
	app, _ := newTestApp(t, Options{Clipboard: cb})

	app.Copied("text")
	if len(cb.texts) != 0 {
		t.Errorf("clipboard written while disabled: %q", cb.texts)
	}
}

func TestLogLevelOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want LogLevel
	}{
		{"config default", Options{}, LogLevelInfo},
		{"flag", Options{LogLevel: "error"}, LogLevelError},
		{"debug wins", Options{LogLevel: "error", Debug: true}, LogLevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, tt.opts)
			if got := app.Logger().Level(); got != tt.want {
				t.Errorf("Level() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "keyedit.log")
	cfgPath := writeConfig(t, "[logging]\nfile = \""+filepath.ToSlash(logPath)+"\"\n")

	app, err := New(Options{
		ConfigPath: cfgPath,
		Input:      strings.NewReader("13\n"),
		Output:     io.Discard,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_ = app.Run()
	app.Shutdown()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "session started") {
		t.Errorf("log file content:\n%s", data)
	}
}

func TestHandleChange(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	path := filepath.Join(t.TempDir(), "doc.txt")
	now := time.Now()

	// Own write within the window is ignored.
	app.ownWrites[path] = now.Add(time.Second)
	app.handleChange(fileio.ChangeEvent{Path: path, Op: fileio.OpWrite, Timestamp: now})
	if n := app.Notices(); len(n) != 0 {
		t.Errorf("own write reported: %q", n)
	}

	// Removal is always reported.
	app.handleChange(fileio.ChangeEvent{Path: path, Op: fileio.OpRemove, Timestamp: now})
	if n := app.Notices(); len(n) != 1 || n[0] != "file changed on disk: "+path {
		t.Errorf("Notices() = %q", n)
	}

	// After the window writes are external again.
	later := now.Add(2 * time.Second)
	app.handleChange(fileio.ChangeEvent{Path: path, Op: fileio.OpWrite, Timestamp: later})
	app.handleChange(fileio.ChangeEvent{Path: path, Op: fileio.OpWrite, Timestamp: later})
	if n := app.Notices(); len(n) != 1 {
		t.Errorf("Notices() = %q, want one deduplicated notice", n)
	}
	if _, ok := app.ownWrites[path]; ok {
		t.Error("expired own write not cleared")
	}
}

func TestWatch_ExternalChange(t *testing.T) {
	cfgPath := writeConfig(t, "[files]\nwatch = true\n")
	pr, pw := io.Pipe()
	defer pw.Close()

	app, _ := newTestApp(t, Options{ConfigPath: cfgPath, Input: pr})
	if app.watcher == nil {
		t.Skip("file watching unavailable")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	if err := os.WriteFile(path, []byte("v1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := app.Open(path); err != nil {
		t.Fatal(err)
	}

	go func() { _ = app.Run() }()

	// The editor's own save is not reported.
	if err := app.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if n := app.Notices(); len(n) != 0 {
		t.Fatalf("own save reported: %q", n)
	}

	time.Sleep(ownWriteWindow)
	if err := os.WriteFile(path, []byte("v2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	abs, _ := filepath.Abs(path)
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		for _, n := range app.Notices() {
			if n == "file changed on disk: "+abs {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("external change not reported")
}
