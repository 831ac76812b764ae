// Package fileio connects an editing session to the file system.
//
// Load reads a file into a single string with every line terminated by
// "\n". Save writes a string verbatim, truncating any existing file. Both
// report failures as *PathError values wrapping one of the package's
// sentinel errors, so callers can test them with errors.Is:
//
//	text, err := fileio.Load("notes.txt")
//	if errors.Is(err, fileio.ErrNotFound) {
//	    // ...
//	}
//
// Watcher reports changes made to opened files by other programs.
package fileio
