package server

import (
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hacklab/ledwall/internal/display"
	"github.com/hacklab/ledwall/internal/frame"
)

func newTestServer() (*Server, *frame.Handoff) {
	h := frame.NewHandoff()
	disp := display.New(h, zerolog.Nop())
	return New(disp, h.Active, zerolog.Nop()), h
}

func TestIndexServesPage(t *testing.T) {
	s, _ := newTestServer()
	rr := httptest.NewRecorder()
	s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `name="msg"`) {
		t.Fatal("page missing the text form")
	}
}

func TestUnknownPathIs404(t *testing.T) {
	s, _ := newTestServer()
	rr := httptest.NewRecorder()
	s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestTextEndpointWritesPending(t *testing.T) {
	s, h := newTestServer()
	rr := httptest.NewRecorder()
	// net/http decodes %20 and + before the handler sees the value.
	s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/text?msg=HI+THERE", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !h.TrySwap() {
		t.Fatal("request did not mark the pending buffer ready")
	}
	lit := false
	for y := 0; y < frame.Height && !lit; y++ {
		for x := 0; x < frame.Width && !lit; x++ {
			lit = h.Active()[y][x] != [3]uint16{}
		}
	}
	if !lit {
		t.Fatal("no pixels rendered from /text")
	}
}

func TestClearEndpoint(t *testing.T) {
	s, h := newTestServer()
	mux := s.Routes()

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/text?msg=X", nil))
	if !h.TrySwap() {
		t.Fatal("text swap rejected")
	}
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clear", nil))
	if !h.TrySwap() {
		t.Fatal("clear swap rejected")
	}
	if *h.Active() != (frame.PixelBuffer{}) {
		t.Fatal("panel not dark after /clear")
	}
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer()
	rr := httptest.NewRecorder()
	s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("health body = %s", body)
	}
}

func TestEncodeFrame(t *testing.T) {
	var fb frame.PixelBuffer
	fb.SetPixel(0, 0, 0xFF00, 0x8000, 0x0100)

	buf := encodeFrame(&fb)
	if len(buf) != 4+frame.Width*frame.Height*3 {
		t.Fatalf("payload length = %d", len(buf))
	}
	if binary.BigEndian.Uint16(buf[0:]) != frame.Width || binary.BigEndian.Uint16(buf[2:]) != frame.Height {
		t.Fatal("geometry header wrong")
	}
	if buf[4] != 0xFF || buf[5] != 0x80 || buf[6] != 0x01 {
		t.Fatalf("first pixel = %v", buf[4:7])
	}
}
