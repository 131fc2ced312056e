package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/inventory-dashboard/internal/middleware"
	"github.com/01moynul/inventory-dashboard/internal/models"
	"github.com/01moynul/inventory-dashboard/internal/storage"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store storage.Store
	Log   *zap.Logger
}

// New wires the handlers to a store. A nil logger discards output.
func New(store storage.Store, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{Store: store, Log: log}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string             `json:"message"`
	Errors  models.FieldErrors `json:"errors,omitempty"`
}

// MessageResponse is the body of a successful delete.
type MessageResponse struct {
	Message string `json:"message"`
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Message: message})
}

// serverError logs the real cause and answers with a generic 500.
func (h *Handlers) serverError(c *gin.Context, message string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.Error(err),
		zap.String("request_id", middleware.GetRequestID(c)),
	)
	h.Log.Error(message, fields...)
	fail(c, http.StatusInternalServerError, message)
}

// Health answers GET /api/health once the store is reachable.
func (h *Handlers) Health(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		h.Log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
