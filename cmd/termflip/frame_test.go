package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantLines  []string
		wantHeight int
		wantWidth  int
	}{
		{"empty content", "", nil, 0, 0},
		{"single line", "hello", []string{"hello"}, 1, 5},
		{"trailing newline", "hello\n", []string{"hello"}, 1, 5},
		{"two lines", "ab\ncdef", []string{"ab", "cdef"}, 2, 4},
		{"crlf line endings", "ab\r\ncd\r\n", []string{"ab", "cd"}, 2, 2},
		{"empty middle row", "top\n\nbottom", []string{"top", "", "bottom"}, 3, 6},
		{"only newline", "\n", []string{""}, 1, 0},
		{"colored width ignores escapes", "\x1b[31mred\x1b[0m\nlonger", []string{"\x1b[31mred\x1b[0m", "longer"}, 2, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame("test", tt.content)
			if f.Height != tt.wantHeight {
				t.Errorf("Height = %d, want %d", f.Height, tt.wantHeight)
			}
			if f.Width != tt.wantWidth {
				t.Errorf("Width = %d, want %d", f.Width, tt.wantWidth)
			}
			if len(f.Lines) != len(tt.wantLines) {
				t.Fatalf("Lines = %q, want %q", f.Lines, tt.wantLines)
			}
			for i := range tt.wantLines {
				if f.Lines[i] != tt.wantLines[i] {
					t.Errorf("Lines[%d] = %q, want %q", i, f.Lines[i], tt.wantLines[i])
				}
			}
			if f.Height != len(f.Lines) {
				t.Errorf("Height %d != len(Lines) %d", f.Height, len(f.Lines))
			}
		})
	}
}

func TestFrameLine(t *testing.T) {
	f := NewFrame("test", "zero\n\ntwo")

	tests := []struct {
		name   string
		y      int
		want   string
		wantOK bool
	}{
		{"first row", 0, "zero", true},
		{"empty row is present", 1, "", true},
		{"last row", 2, "two", true},
		{"just past end", 3, "", false},
		{"far past end", 100, "", false},
		{"negative", -1, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.Line(tt.y)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Line(%d) = (%q, %v), want (%q, %v)", tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFrameIndex(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantIndex int
		wantOK    bool
	}{
		{"plain index", "frame_cleaned_7.txt", 7, true},
		{"zero padded", "frame_cleaned_007.txt", 7, true},
		{"large index", "frame_cleaned_1234.txt", 1234, true},
		{"wrong prefix", "other_7.txt", 0, false},
		{"wrong extension", "frame_cleaned_7.png", 0, false},
		{"no index", "frame_cleaned_.txt", 0, false},
		{"non-numeric index", "frame_cleaned_abc.txt", 0, false},
		{"negative index", "frame_cleaned_-1.txt", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := frameIndex(tt.filename, "frame_cleaned_", ".txt")
			if got != tt.wantIndex || ok != tt.wantOK {
				t.Errorf("frameIndex(%q) = (%d, %v), want (%d, %v)", tt.filename, got, ok, tt.wantIndex, tt.wantOK)
			}
		})
	}
}

// writeFrameFile is a test helper creating one frame file in dir.
func writeFrameFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write frame file %s: %v", name, err)
	}
}

func TestLoadFramesNumericOrder(t *testing.T) {
	dir := t.TempDir()
	// Written out of order and unpadded: lexicographic sorting would yield 1, 10, 2.
	writeFrameFile(t, dir, "frame_cleaned_10.txt", "ten")
	writeFrameFile(t, dir, "frame_cleaned_2.txt", "two")
	writeFrameFile(t, dir, "frame_cleaned_1.txt", "one")

	frames, err := loadFrames(dir, "frame_cleaned_", ".txt")
	if err != nil {
		t.Fatalf("loadFrames: %v", err)
	}

	var got []string
	for _, f := range frames {
		got = append(got, f.Lines[0])
	}
	want := []string{"one", "two", "ten"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("frame order = %v, want %v", got, want)
	}
}

func TestLoadFramesIgnoresNonMatching(t *testing.T) {
	dir := t.TempDir()
	writeFrameFile(t, dir, "frame_cleaned_1.txt", "one")
	writeFrameFile(t, dir, "README.md", "not a frame")
	writeFrameFile(t, dir, "frame_cleaned_x.txt", "bad index")
	if err := os.Mkdir(filepath.Join(dir, "frame_cleaned_9.txt"), 0755); err != nil {
		t.Fatal(err)
	}

	frames, err := loadFrames(dir, "frame_cleaned_", ".txt")
	if err != nil {
		t.Fatalf("loadFrames: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if frames[0].Name != "frame_cleaned_1.txt" {
		t.Errorf("frame name = %q, want frame_cleaned_1.txt", frames[0].Name)
	}
}

func TestLoadFramesEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFrameFile(t, dir, "unrelated.txt", "nope")

	_, err := loadFrames(dir, "frame_cleaned_", ".txt")
	if err == nil {
		t.Fatal("expected error for directory with no matching frames")
	}
	if !strings.Contains(err.Error(), "no frame files found") {
		t.Errorf("error = %q, want it to mention no frame files found", err)
	}
}

func TestLoadFramesMissingDir(t *testing.T) {
	_, err := loadFrames(filepath.Join(t.TempDir(), "does-not-exist"), "frame_cleaned_", ".txt")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
