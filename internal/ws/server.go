// Package ws receives RGB frames over websockets and pushes them to a strip.
package ws

import (
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/display"
)

// readSlack is the allowance over one frame for a /frames message.
const readSlack = 512

// Reply is sent back for every message received on /frames.
type Reply struct {
	FrameID uint64 `json:"frame_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Server struct {
	mu      sync.Mutex
	drawer  display.Drawer
	img     *image.NRGBA
	frameID uint64
	lastErr error
	start   time.Time

	up websocket.Upgrader
}

// NewServer returns a Server drawing on d. d is only accessed from one
// goroutine at a time.
func NewServer(d display.Drawer) *Server {
	b := d.Bounds()
	return &Server{
		drawer: d,
		img:    image.NewNRGBA(image.Rect(0, 0, b.Dx()*b.Dy(), 1)),
		start:  time.Now(),
		up:     websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Handler routes /frames and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frames", s.HandleFramesWS)
	mux.HandleFunc("/health", s.HandleHealth)
	return mux
}

// Count is the number of pixels a frame must carry.
func (s *Server) Count() int {
	return s.img.Rect.Dx()
}

// WriteFrame draws rgb, 3 bytes per pixel in chain order.
func (s *Server) WriteFrame(rgb []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(rgb) != 3*s.Count() {
		return 0, fmt.Errorf("ws: frame length %d, want %d", len(rgb), 3*s.Count())
	}
	for i := 0; i < s.Count(); i++ {
		copy(s.img.Pix[4*i:4*i+3], rgb[3*i:3*i+3])
		s.img.Pix[4*i+3] = 0xFF
	}
	if err := s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{}); err != nil {
		s.lastErr = err
		return 0, err
	}
	s.lastErr = nil
	s.frameID++
	return s.frameID, nil
}

func (s *Server) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("upgrade")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(int64(3*s.Count()) + readSlack)
	log.Info().Str("remote", r.RemoteAddr).Msg("frames client connected")
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Str("remote", r.RemoteAddr).Msg("frames client gone")
			return
		}
		var rep Reply
		if mt != websocket.BinaryMessage {
			rep.Error = "ws: expected a binary frame"
		} else if id, err := s.WriteFrame(data); err != nil {
			log.Warn().Err(err).Int("len", len(data)).Msg("frame rejected")
			rep.Error = err.Error()
		} else {
			rep.FrameID = id
		}
		if err := conn.WriteJSON(rep); err != nil {
			log.Debug().Err(err).Msg("write reply")
			return
		}
	}
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.start).Seconds(),
		"count":    s.Count(),
		"driver":   s.drawer.String(),
	}
	if s.lastErr != nil {
		resp["last_error"] = s.lastErr.Error()
	}
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
