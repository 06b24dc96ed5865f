// Package server exposes the display over HTTP: the controller page, the
// text and clear endpoints, a health probe and a websocket frame feed.
package server

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/hacklab/ledwall/internal/display"
	"github.com/hacklab/ledwall/internal/frame"
)

// Server wires the producer service to the network. It never talks to the
// refresh engine; its only effect on the panel is through the buffer
// handoff.
type Server struct {
	disp   *display.Service
	active func() *frame.PixelBuffer
	log    zerolog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	start   time.Time
}

// New returns a server over the producer service. active yields the buffer
// currently shown, for the preview feed.
func New(disp *display.Service, active func() *frame.PixelBuffer, log zerolog.Logger) *Server {
	return &Server{
		disp:    disp,
		active:  active,
		log:     log,
		clients: map[*websocket.Conn]bool{},
		start:   time.Now(),
	}
}

// Routes returns the request mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/text", s.handleText)
	mux.HandleFunc("/clear", s.handleClear)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) servePage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.servePage(w)
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	msg := r.URL.Query().Get("msg")
	if err := s.disp.SetText(msg); err != nil {
		s.log.Error().Err(err).Msg("set text failed")
		http.Error(w, "display update failed", http.StatusInternalServerError)
		return
	}
	s.servePage(w)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.disp.Clear(); err != nil {
		s.log.Error().Err(err).Msg("clear failed")
		http.Error(w, "display update failed", http.StatusInternalServerError)
		return
	}
	s.servePage(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"uptime_s": int(time.Since(s.start).Seconds()),
		"width":    frame.Width,
		"height":   frame.Height,
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	s.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("preview client connected")

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// RunPreview broadcasts active-buffer snapshots to websocket clients until
// ctx is cancelled.
func (s *Server) RunPreview(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.broadcastFrame()
		}
	}
}

// Frame wire format: u16 width, u16 height, then RGB triplets of the top
// byte of each channel, row-major.
func encodeFrame(fb *frame.PixelBuffer) []byte {
	buf := make([]byte, 4+frame.Width*frame.Height*3)
	binary.BigEndian.PutUint16(buf[0:], frame.Width)
	binary.BigEndian.PutUint16(buf[2:], frame.Height)
	i := 4
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			px := fb[y][x]
			buf[i] = byte(px[0] >> 8)
			buf[i+1] = byte(px[1] >> 8)
			buf[i+2] = byte(px[2] >> 8)
			i += 3
		}
	}
	return buf
}

func (s *Server) broadcastFrame() {
	s.mu.Lock()
	if len(s.clients) == 0 {
		s.mu.Unlock()
		return
	}
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	payload := encodeFrame(s.active())
	for _, c := range conns {
		if err := c.WriteMessage(websocket.BinaryMessage, payload); err != nil {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
			c.Close()
		}
	}
}
