package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"
)

// Version can be set at build time with: go build -ldflags "-X main.Version=<version>"
var Version = "dev"

func main() {
	dir := flag.String("dir", "ghostty-animation-frames", "Directory containing frame files")
	prefix := flag.String("prefix", "frame_cleaned_", "Frame filename prefix")
	ext := flag.String("ext", ".txt", "Frame filename extension")
	delay := flag.Duration("delay", 20*time.Millisecond, "Delay between frames")
	addr := flag.String("addr", "", "Listen address for browser viewers (empty = disabled)")
	watch := flag.Bool("watch", false, "Reload frames when files in the directory change")
	version := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("termflip version %s\n", Version)
		return
	}

	frames, err := loadFrames(*dir, *prefix, *ext)
	if err != nil {
		log.Fatalf("Failed to load frames: %v", err)
	}
	maxWidth, maxHeight := frameBounds(frames)
	log.Printf("Loaded %d frames from %s (%dx%d)", len(frames), *dir, maxWidth, maxHeight)

	checkTerminal(maxWidth, maxHeight)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Log lines go to stderr, the animation stream to stdout; when viewers
	// are enabled the stream is teed into the broadcast hub as well.
	out := io.Writer(os.Stdout)
	if *addr != "" {
		hub := newViewerHub(maxWidth, maxHeight)
		go serveViewers(*addr, hub)
		out = io.MultiWriter(os.Stdout, hub)
	}

	renderer := newRenderer(out, frames, *delay)

	if *watch {
		renderer.reload = make(chan []*Frame, 1)
		if err := watchFrames(ctx, *dir, *prefix, *ext, renderer.reload); err != nil {
			log.Fatalf("Failed to watch %s: %v", *dir, err)
		}
		log.Printf("Watching %s for frame changes", *dir)
	}

	log.Printf("Starting animation (delay %v)", *delay)
	time.Sleep(time.Second)

	if err := renderer.run(ctx); err != nil {
		log.Fatalf("Render error: %v", err)
	}
}

// frameBounds returns the largest width and height across frames.
func frameBounds(frames []*Frame) (width, height int) {
	for _, f := range frames {
		if f.Width > width {
			width = f.Width
		}
		if f.Height > height {
			height = f.Height
		}
	}
	return width, height
}

// checkTerminal warns when stdout is not a terminal or the terminal is too
// small for the animation. Both are advisory only: output may deliberately
// be piped, and a small terminal just clips.
func checkTerminal(frameWidth, frameHeight int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		log.Printf("Warning: stdout is not a terminal")
		return
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return
	}
	if cols < frameWidth || rows < frameHeight {
		log.Printf("Warning: terminal %dx%d is smaller than animation %dx%d", cols, rows, frameWidth, frameHeight)
	}
}
