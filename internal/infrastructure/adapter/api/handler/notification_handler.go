package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the in-app inbox
type NotificationHandler struct {
	inbox  usecase.InboxUseCase
	logger coreport.Logger
}

// NewNotificationHandler creates a new notification handler instance
func NewNotificationHandler(inbox usecase.InboxUseCase, logger coreport.Logger) *NotificationHandler {
	return &NotificationHandler{inbox: inbox, logger: logger}
}

// List handles GET /notifications?unread=true&limit=N
func (h *NotificationHandler) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	unreadOnly := c.Query("unread") == "true"

	ns, err := h.inbox.List(c.Request.Context(), middleware.UserID(c), unreadOnly, limit)
	if err != nil {
		writeError(c, h.logger, "list notifications", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNotificationResponses(ns))
}

// MarkRead handles POST /notifications/:notificationId/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.inbox.MarkRead(c.Request.Context(), middleware.UserID(c), c.Param("notificationId")); err != nil {
		writeError(c, h.logger, "mark notification read", err)
		return
	}
	c.Status(http.StatusNoContent)
}
