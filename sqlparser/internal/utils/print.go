package utils

import (
	"fmt"
	"os"
)

var _, enable_debug = os.LookupEnv("SQLSCRIPT_DEBUG")

// DPrint writes a debug line to stderr when SQLSCRIPT_DEBUG is set.
func DPrint(format string, a ...any) {
	if !enable_debug {
		return
	}
	fmt.Fprintf(os.Stderr, "\033[0;31mDEBUG:\033[0m")
	fmt.Fprintf(os.Stderr, format, a...)
}

// Enabled reports whether debug printing is switched on.
func Enabled() bool {
	return enable_debug
}
