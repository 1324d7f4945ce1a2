package handler

import (
	"errors"
	"net/http"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/apperr"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/auth"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/chathub"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler bundles the dependencies the HTTP layer needs.
type Handler struct {
	Store  storage.Storage
	Hub    *chathub.Hub
	Tokens *auth.Manager
	Log    *zap.SugaredLogger
}

func NewHandler(store storage.Storage, hub *chathub.Hub, tokens *auth.Manager, log *zap.SugaredLogger) *Handler {
	return &Handler{Store: store, Hub: hub, Tokens: tokens, Log: log}
}

// fail maps a service error to an HTTP response. Unknown errors are
// logged and reported as a generic 500 so internals never leak.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
	case errors.Is(err, apperr.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, apperr.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": "not a participant of this room"})
	case errors.Is(err, apperr.ErrDeleteWindow):
		c.JSON(http.StatusForbidden, gin.H{"error": "message can no longer be deleted"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.Log.Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
