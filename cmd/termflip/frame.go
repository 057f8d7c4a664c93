package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Frame is one fully-rendered snapshot of the animation: an ordered list of
// raw text rows (row 0 = top), possibly containing embedded ANSI color
// sequences. Frames are built once at load time and never mutated.
type Frame struct {
	Name   string
	Lines  []string
	Height int
	Width  int // widest row in terminal columns, measured with escapes stripped
}

// NewFrame parses raw frame file content into a Frame. Content is split into
// rows on line boundaries, preserving empty rows; a single trailing newline
// does not produce a phantom empty row.
func NewFrame(name, content string) *Frame {
	lines := splitLines(content)
	width := 0
	for _, line := range lines {
		if w := visualWidth(line); w > width {
			width = w
		}
	}
	return &Frame{
		Name:   name,
		Lines:  lines,
		Height: len(lines),
		Width:  width,
	}
}

// splitLines splits text into rows, one per line. Empty content yields no
// rows (not one empty row).
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// Line returns the row at index y, with ok reporting whether the frame has a
// row there at all. The differ relies on the distinction between "no row"
// (ok=false) and an empty row (ok=true, row="") to detect frames of
// different heights.
func (f *Frame) Line(y int) (string, bool) {
	if y < 0 || y >= f.Height {
		return "", false
	}
	return f.Lines[y], true
}

// frameIndex extracts the integer index from a frame filename of the form
// <prefix><n><ext>, e.g. frame_cleaned_042.txt. Zero padding is accepted.
func frameIndex(name, prefix, ext string) (int, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// loadFrames reads every file in dir whose name matches <prefix><n><ext> and
// returns the parsed frames ordered by ascending n. An empty result is an
// error: there is nothing to animate.
func loadFrames(dir, prefix, ext string) ([]*Frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading frame directory: %w", err)
	}

	type indexed struct {
		index int
		name  string
	}
	var matches []indexed
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if n, ok := frameIndex(entry.Name(), prefix, ext); ok {
			matches = append(matches, indexed{index: n, name: entry.Name()})
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no frame files found in %s (expected %s<n>%s)", dir, prefix, ext)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].index < matches[j].index })

	frames := make([]*Frame, 0, len(matches))
	for _, m := range matches {
		content, err := os.ReadFile(filepath.Join(dir, m.name))
		if err != nil {
			return nil, fmt.Errorf("reading frame %s: %w", m.name, err)
		}
		frames = append(frames, NewFrame(m.name, string(content)))
	}
	return frames, nil
}
