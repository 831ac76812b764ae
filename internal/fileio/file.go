package fileio

import (
	"io"
	"os"
	"strings"
)

// DefaultFileMode is the permission used when Save creates a file.
const DefaultFileMode os.FileMode = 0644

// Load reads the file at path and returns its content with every line,
// including the last, terminated by "\n".
// Nothing is returned on failure; the caller's state stays untouched.
func Load(path string) (string, error) {
	if path == "" {
		return "", NewPathError("load", path, ErrEmptyPath)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", NewPathError("load", path, classify(err))
	}
	if info.IsDir() {
		return "", NewPathError("load", path, ErrIsDirectory)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", NewPathError("load", path, classify(err))
	}
	defer f.Close()

	text, err := ReadText(f)
	if err != nil {
		return "", NewPathError("load", path, err)
	}
	return text, nil
}

// ReadText reads all of r and normalises it to "\n" line endings.
// "\r\n" and lone "\r" both end a line. A final line without a terminator
// gets one; empty input stays empty.
func ReadText(r io.Reader) (string, error) {
	// Read all content first: a "\r\n" pair may straddle read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	text := normalizeLineEndings(string(data))
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text, nil
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// Save writes content to path verbatim, creating the file or truncating an
// existing one.
func Save(path, content string) error {
	if path == "" {
		return NewPathError("save", path, ErrEmptyPath)
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return NewPathError("save", path, ErrIsDirectory)
	}

	if err := os.WriteFile(path, []byte(content), DefaultFileMode); err != nil {
		return NewPathError("save", path, classify(err))
	}
	return nil
}
