package errors

import "os"

// ANSI escape sequences used when rendering diagnostics to a terminal.
const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
)

// ColorEnabled reports whether diagnostics written to f should use ANSI
// color. NO_COLOR always wins; otherwise f must be a terminal that the
// platform layer could put into VT mode.
func ColorEnabled(f *os.File) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return enableVirtualTerminal(f)
}

// Render formats err for terminal output, colorizing the message when the
// destination supports it.
func Render(err error, f *os.File) string {
	if !ColorEnabled(f) {
		return "error: " + err.Error()
	}
	return ansiBold + ansiRed + "error: " + ansiReset + err.Error()
}
