package main

import (
	"bufio"
	"context"
	"io"
	"time"
)

// DifferentialRenderer plays an ordered frame sequence on a terminal,
// redrawing only the rows that changed between consecutive frames. All
// writes for one frame are batched and flushed together, bracketed by
// synchronized-update mode so the terminal never shows a half-applied
// frame.
type DifferentialRenderer struct {
	out    *bufio.Writer
	frames []*Frame
	delay  time.Duration

	// reload, when non-nil, delivers a replacement frame sequence (from the
	// -watch file watcher). Swaps happen only at the sleep boundary.
	reload chan []*Frame
}

// newRenderer creates a renderer that writes to w. The frame sequence and
// inter-frame delay are fixed for the lifetime of the renderer unless a
// reload channel is attached.
func newRenderer(w io.Writer, frames []*Frame, delay time.Duration) *DifferentialRenderer {
	return &DifferentialRenderer{
		out:    bufio.NewWriterSize(w, 64*1024),
		frames: frames,
		delay:  delay,
	}
}

// renderFull clears the screen and draws every row of frame, leaving the
// terminal showing exactly frame's content. Used for the first frame and
// after a frame-set reload.
func (r *DifferentialRenderer) renderFull(frame *Frame) error {
	r.out.WriteString(clearScreen)
	for y, line := range frame.Lines {
		r.out.WriteString(moveCursor(0, y))
		r.out.WriteString(line)
	}
	return r.out.Flush()
}

// renderDiff transforms the screen from current to next, touching only the
// rows that differ. Rows present in current but not in next are erased, so
// no stale content survives a height decrease. Exactly one flush at the end.
func (r *DifferentialRenderer) renderDiff(current, next *Frame) error {
	maxHeight := current.Height
	if next.Height > maxHeight {
		maxHeight = next.Height
	}

	for y := 0; y < maxHeight; y++ {
		currentLine, currentOK := current.Line(y)
		nextLine, nextOK := next.Line(y)

		content, changed := diffLine(currentLine, currentOK, nextLine, nextOK)
		if !changed {
			continue
		}
		r.out.WriteString(moveCursor(0, y))
		r.out.WriteString(eraseLine)
		if nextOK {
			r.out.WriteString(content)
		}
	}

	// Second pass for a shrinking frame: erase every trailing row index that
	// existed in current but not in next. The main loop already erases these,
	// but the trailing sweep guarantees it independent of the diff rule.
	if next.Height < current.Height {
		for y := next.Height; y < current.Height; y++ {
			r.out.WriteString(moveCursor(0, y))
			r.out.WriteString(eraseLine)
		}
	}

	return r.out.Flush()
}

// run plays the frame sequence until ctx is cancelled or a write fails.
// After the initial full render of frame 0 the visiting order is
// frames[1], frames[2], ..., frames[n-1], frames[0], repeating forever,
// with one delay-length sleep before each frame. With no frames at all, run
// is a no-op and touches the terminal not at all.
func (r *DifferentialRenderer) run(ctx context.Context) (err error) {
	if len(r.frames) == 0 {
		return nil
	}

	r.out.WriteString(hideCursor)
	r.out.WriteString(enableSyncUpdate)
	defer func() {
		if terr := r.teardown(); err == nil {
			err = terr
		}
	}()

	current := r.frames[0]
	if err := r.renderFull(current); err != nil {
		return err
	}

	idx := 1 % len(r.frames)
	for {
		select {
		case <-ctx.Done():
			return nil
		case fresh := <-r.reload:
			// The old screen content is unrelated to the new sequence, so
			// restart playback with a full render.
			r.frames = fresh
			current = fresh[0]
			if err := r.renderFull(current); err != nil {
				return err
			}
			idx = 1 % len(fresh)
			continue
		case <-time.After(r.delay):
		}

		next := r.frames[idx]
		if err := r.renderDiff(current, next); err != nil {
			return err
		}
		current = next
		idx = (idx + 1) % len(r.frames)
	}
}

// teardown restores the terminal: cursor visible, screen cleared,
// synchronized mode off, and a final status line. It runs on every exit from
// run, cancelled or not.
func (r *DifferentialRenderer) teardown() error {
	r.out.WriteString(showCursor)
	r.out.WriteString(clearScreen)
	r.out.WriteString(disableSyncUpdate)
	r.out.WriteString("Animation stopped.\n")
	return r.out.Flush()
}
