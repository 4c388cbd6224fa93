package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// SetTerminalBackground emits OSC 11 to set the terminal's default background
// color. Returns a function that restores the original default via OSC 111.
// This makes every ANSI reset (\033[0m) fall back to the specified color
// instead of the terminal's configured default (usually black).
//
// Nothing is written when stdout is not a terminal.
func SetTerminalBackground(hexColor string) func() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return func() {}
	}
	return setTermBg(os.Stdout, hexColor)
}

// setTermBg writes to the given writer instead of stdout.
func setTermBg(w io.Writer, hexColor string) func() {
	if hexColor == "" {
		return func() {}
	}
	// OSC 11 ; <color> ST: set default background color
	fmt.Fprintf(w, "\033]11;%s\033\\", hexColor)

	return func() {
		// OSC 111 ST: reset default background to the configured value
		fmt.Fprint(w, "\033]111\033\\")
	}
}
