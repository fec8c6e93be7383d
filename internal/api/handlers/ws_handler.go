package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/shamsaravaiah/LYSYN/internal/services"
)

// WSHandler streams pipeline state snapshots to the presentation layer so
// it can render recording/transcribing/summarizing indicators without
// polling.
type WSHandler struct {
	pipeline *services.Pipeline
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(pipeline *services.Pipeline, log *logrus.Logger) *WSHandler {
	if log == nil {
		log = logrus.New()
	}
	return &WSHandler{
		pipeline: pipeline,
		log:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

type wsEvent struct {
	Type  string                 `json:"type"`
	State services.PipelineState `json:"state"`
}

// VisitWS handles GET /ws/visit: sends the current state immediately, then
// one event per pipeline transition until the client disconnects.
func (h *WSHandler) VisitWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade failed")
		return
	}
	wc := &wsConn{c: conn}
	defer conn.Close()

	events, cancel := h.pipeline.Subscribe()
	defer cancel()

	if b, err := json.Marshal(wsEvent{Type: "state", State: h.pipeline.State()}); err == nil {
		if err := wc.writeText(b); err != nil {
			return
		}
	}

	// drain client frames so pings and closes are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for st := range events {
		b, err := json.Marshal(wsEvent{Type: "state", State: st})
		if err != nil {
			continue
		}
		if err := wc.writeText(b); err != nil {
			return
		}
	}
}
