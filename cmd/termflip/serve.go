package main

import (
	"bytes"
	"embed"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hinshun/vt10x"
)

//go:embed static/*
var staticFS embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // viewers are read-only; any origin may watch
	},
}

// viewerHub mirrors the animation byte stream to WebSocket viewers. It sits
// as a tee on the renderer's output path: every byte written to the local
// terminal is also fed to a virtual terminal (for late-joiner snapshots) and
// broadcast to all connected viewers.
type viewerHub struct {
	mu      sync.RWMutex
	viewers map[*websocket.Conn]string // conn -> short viewer id for logs
	writeMu sync.Mutex                 // gorilla/websocket isn't concurrent-write safe

	vt   vt10x.Terminal // virtual terminal tracking current screen state
	vtMu sync.Mutex
}

// newViewerHub creates a hub whose virtual terminal is sized to fit the
// animation (cols x rows).
func newViewerHub(cols, rows int) *viewerHub {
	if cols < 80 {
		cols = 80
	}
	if rows < 24 {
		rows = 24
	}
	return &viewerHub{
		viewers: make(map[*websocket.Conn]string),
		vt:      vt10x.New(vt10x.WithSize(cols, rows)),
	}
}

// Write implements io.Writer. It never returns an error: a failed viewer
// write drops that viewer only and must not interrupt local playback.
func (h *viewerHub) Write(p []byte) (int, error) {
	h.vtMu.Lock()
	h.vt.Write(p)
	h.vtMu.Unlock()

	h.mu.RLock()
	defer h.mu.RUnlock()
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for conn, id := range h.viewers {
		if err := conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
			log.Printf("Viewer %s write error: %v", id, err)
			conn.Close()
		}
	}
	return len(p), nil
}

// addViewer registers a connection and returns its short id.
func (h *viewerHub) addViewer(conn *websocket.Conn) string {
	id := uuid.New().String()[:5]
	h.mu.Lock()
	h.viewers[conn] = id
	total := len(h.viewers)
	h.mu.Unlock()
	log.Printf("Viewer %s connected (total: %d)", id, total)
	return id
}

// removeViewer unregisters a connection.
func (h *viewerHub) removeViewer(conn *websocket.Conn) {
	h.mu.Lock()
	id := h.viewers[conn]
	delete(h.viewers, conn)
	total := len(h.viewers)
	h.mu.Unlock()
	log.Printf("Viewer %s disconnected (total: %d)", id, total)
}

// viewerCount returns the number of connected viewers.
func (h *viewerHub) viewerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// snapshot builds the ANSI byte sequence that recreates the current screen
// state from scratch, so a late-joining viewer starts from the live picture
// instead of a blank terminal.
func (h *viewerHub) snapshot() []byte {
	h.vtMu.Lock()
	defer h.vtMu.Unlock()

	var buf bytes.Buffer
	cols, rows := h.vt.Size()

	buf.WriteString(clearScreen)

	lastFG, lastBG := vt10x.DefaultFG, vt10x.DefaultBG
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := h.vt.Cell(col, row)

			if cell.FG != lastFG || cell.BG != lastBG {
				buf.WriteString("\x1b[0m")
				if cell.FG != vt10x.DefaultFG && cell.FG < 256 {
					fmt.Fprintf(&buf, "\x1b[38;5;%dm", cell.FG)
				}
				if cell.BG != vt10x.DefaultBG && cell.BG < 256 {
					fmt.Fprintf(&buf, "\x1b[48;5;%dm", cell.BG)
				}
				lastFG, lastBG = cell.FG, cell.BG
			}

			if cell.Char == 0 {
				buf.WriteRune(' ')
			} else {
				buf.WriteRune(cell.Char)
			}
		}
		if row < rows-1 {
			buf.WriteString("\r\n")
		}
	}

	buf.WriteString("\x1b[0m")
	cursor := h.vt.Cursor()
	buf.WriteString(moveCursor(cursor.X, cursor.Y))

	return buf.Bytes()
}

// handleWebSocket upgrades the connection, catches the viewer up with a
// screen snapshot, then holds the connection open until the viewer leaves.
// The live stream arrives via Write; the read loop exists only to detect
// disconnects.
func (h *viewerHub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	snap := h.snapshot()
	h.writeMu.Lock()
	err = conn.WriteMessage(websocket.BinaryMessage, snap)
	h.writeMu.Unlock()
	if err != nil {
		log.Printf("Snapshot write error: %v", err)
		return
	}

	h.addViewer(conn)
	defer h.removeViewer(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// serveViewers runs the viewer HTTP server on addr. It blocks, so callers
// run it in a goroutine; listen failures are fatal since the user asked for
// a server they did not get.
func serveViewers(addr string, hub *viewerHub) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		page, err := staticFS.ReadFile("static/index.html")
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	})
	mux.HandleFunc("/ws", hub.handleWebSocket)

	log.Printf("Viewer server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Viewer server error: %v", err)
	}
}
