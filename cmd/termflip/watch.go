package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchFrames watches dir and pushes a freshly loaded frame sequence onto
// reload whenever a matching frame file changes. Rapid bursts of events
// (editors, frame exporters) are debounced into a single reload. A reload
// that fails to load keeps the current sequence playing.
func watchFrames(ctx context.Context, dir, prefix, ext string, reload chan<- []*Frame) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("setting up frame watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()

		// Debounce timer, armed only while a reload is pending.
		debounce := time.NewTimer(0)
		if !debounce.Stop() {
			<-debounce.C
		}
		pending := false
		const debounceDelay = 200 * time.Millisecond

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if _, match := frameIndex(filepath.Base(event.Name), prefix, ext); !match {
					continue
				}
				if !debounce.Stop() && pending {
					<-debounce.C
				}
				debounce.Reset(debounceDelay)
				pending = true

			case <-debounce.C:
				if !pending {
					continue
				}
				pending = false
				frames, err := loadFrames(dir, prefix, ext)
				if err != nil {
					log.Printf("Frame reload failed, keeping current frames: %v", err)
					continue
				}
				select {
				case reload <- frames:
					log.Printf("Reloaded %d frames from %s", len(frames), dir)
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Frame watcher error: %v", err)
			}
		}
	}()

	return nil
}
