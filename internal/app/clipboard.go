package app

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported indicates no system clipboard is available.
var ErrClipboardUnsupported = errors.New("system clipboard unsupported")

// SystemClipboard receives copied text. The editor's own clipboard slot is
// always authoritative; this is a one-way mirror.
type SystemClipboard interface {
	WriteAll(text string) error
}

type osClipboard struct{}

func (osClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// OSClipboard returns the platform clipboard.
func OSClipboard() SystemClipboard {
	return osClipboard{}
}
