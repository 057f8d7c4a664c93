package main

import (
	"fmt"
	"regexp"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences used by the renderer.
const (
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearScreen = "\x1b[2J\x1b[H" // clear entire screen, cursor to home
	eraseLine   = "\x1b[2K"

	// Synchronized update mode (DEC private mode 2026): the terminal
	// defers visible redraw until the batch is complete, avoiding tearing
	// between the individual row updates of one frame.
	enableSyncUpdate  = "\x1b[?2026h"
	disableSyncUpdate = "\x1b[?2026l"
)

// moveCursor returns the escape sequence positioning the cursor at the
// 0-indexed (x, y) cell. Terminals address cells 1-indexed.
func moveCursor(x, y int) string {
	return fmt.Sprintf("\x1b[%d;%dH", y+1, x+1)
}

// ansiPattern matches CSI sequences (ESC [ ... terminated by @-~) and lone
// two-byte ESC sequences.
var ansiPattern = regexp.MustCompile(`\x1b(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// stripANSI removes ANSI escape sequences from text, leaving only the
// printable content.
func stripANSI(text string) string {
	return ansiPattern.ReplaceAllString(text, "")
}

// visualWidth returns the number of terminal columns a row occupies once its
// escape sequences are stripped. East Asian wide runes count as two columns.
func visualWidth(row string) int {
	return runewidth.StringWidth(stripANSI(row))
}
