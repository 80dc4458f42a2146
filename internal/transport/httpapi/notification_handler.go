package httpapi

import (
	"net/http"

	"github.com/zwelix28/canna-bomb-sub001/config"
	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"
	"github.com/zwelix28/canna-bomb-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	subs repository.PushSubscriptionRepo
	push config.Push
	log  *zap.Logger
}

func NewNotificationHandler(subs repository.PushSubscriptionRepo, push config.Push, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{subs: subs, push: push, log: log}
}

// PublicKey is the one public notification endpoint: the browser needs the
// VAPID public key before it can subscribe.
func (h *NotificationHandler) PublicKey(c *gin.Context) {
	if !h.push.Configured() {
		c.JSON(http.StatusServiceUnavailable, BaseError{
			Code:    "push_not_configured",
			Message: service.ErrPushNotConfigured.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicKey": h.push.VAPIDPublicKey})
}

func (h *NotificationHandler) Subscribe(c *gin.Context) {
	uid, ok := service.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, NewUnauthorizedError("authentication required"))
		return
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewValidationError("invalid subscription payload"))
		return
	}

	sub := &models.PushSubscription{
		UserID:   uid,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}
	if err := h.subs.Save(c.Request.Context(), sub); err != nil {
		h.log.Error("failed to save push subscription", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewInternalError(""))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) Unsubscribe(c *gin.Context) {
	uid, ok := service.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, NewUnauthorizedError("authentication required"))
		return
	}
	if err := h.subs.Delete(c.Request.Context(), uid); err != nil {
		h.log.Error("failed to delete push subscription", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewInternalError(""))
		return
	}
	c.Status(http.StatusNoContent)
}
