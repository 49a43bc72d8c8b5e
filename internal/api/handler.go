package api

import (
	"log"

	"github.com/VishalRj23/laundry-management-system/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store  store.Store
	logger *log.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, logger *log.Logger) *Handler {
	return &Handler{
		store:  s,
		logger: logger,
	}
}

// fail logs the underlying store error and reports a stable message to the
// client; raw error detail never reaches the response body.
func (h *Handler) fail(op string, err error) {
	if h.logger != nil {
		h.logger.Printf("%s: %v", op, err)
	}
}
