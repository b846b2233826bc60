package handler

import (
	"context"
	"net/http"
	"time"

	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/feed"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = (feedPongWait * 9) / 10
	feedReadLimit  = 512
)

// FeedSubscriber hands out live event subscriptions
type FeedSubscriber interface {
	Subscribe(ctx context.Context, filter feed.Filter) *feed.Subscription
}

// FeedHandler streams the caller's request events over a websocket
type FeedHandler struct {
	hub      FeedSubscriber
	upgrader websocket.Upgrader
	logger   coreport.Logger
}

// NewFeedHandler creates a new feed handler instance. An empty origin list
// accepts any origin.
func NewFeedHandler(hub FeedSubscriber, allowedOrigins []string, logger coreport.Logger) *FeedHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &FeedHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || allowed["*"] || origin == "" || allowed[origin]
			},
		},
	}
}

// Stream handles GET /feed, optionally narrowed with ?requestId=
func (h *FeedHandler) Stream(c *gin.Context) {
	userID := middleware.UserID(c)
	filter := feed.ForUser(userID)
	if requestID := c.Query("requestId"); requestID != "" {
		filter = filter.ForRequest(requestID)
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.hub.Subscribe(ctx, filter)
	defer sub.Unsubscribe()

	h.logger.Debug("Feed subscriber connected", map[string]any{"userId": userID})

	go h.readPump(conn, cancel)
	h.writePump(conn, sub)

	h.logger.Debug("Feed subscriber disconnected", map[string]any{
		"userId":  userID,
		"dropped": sub.Dropped(),
	})
}

// readPump only services control frames. Any read error ends the session.
func (h *FeedHandler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(feedReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("Unexpected websocket close", map[string]any{"error": err.Error()})
			}
			return
		}
	}
}

func (h *FeedHandler) writePump(conn *websocket.Conn, sub *feed.Subscription) {
	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(dto.NewFeedEvent(event)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
