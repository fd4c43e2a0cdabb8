package handlers

import (
	"log/slog"
	"net/http"

	"tweet-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler serves the tweet event stream.
type WSHandler struct {
	mgr *ws.Manager
}

func NewWSHandler(mgr *ws.Manager) *WSHandler {
	return &WSHandler{mgr: mgr}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleSubscribe upgrades to websocket and keeps the subscriber registered
// until it disconnects.
// GET /ws
func (h *WSHandler) HandleSubscribe(c *gin.Context) {
	if !websocket.IsWebSocketUpgrade(c.Request) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "websocket upgrade required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	id := h.mgr.Register(conn)
	slog.Info("subscriber connected", slog.String("subscriber_id", id), slog.Int("subscribers", h.mgr.Count()))

	defer func() {
		h.mgr.Unregister(id)
		slog.Info("subscriber disconnected", slog.String("subscriber_id", id))
	}()

	// Subscribers only listen; reading is how a close is noticed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("subscriber read error", slog.String("subscriber_id", id), slog.String("error", err.Error()))
			}
			return
		}
	}
}

// GetSubscribers reports how many event subscribers are connected.
// GET /ws/subscribers
func (h *WSHandler) GetSubscribers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": h.mgr.Count()})
}
