//go:build !windows

package errors

import "os"

// enableVirtualTerminal reports whether f is a terminal. Unix terminals
// understand ANSI sequences natively, so no console mode change is needed.
func enableVirtualTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
