package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/careercompass/api/internal/services"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	lookups services.LookupService
}

func NewHealthHandler(lookups services.LookupService) *HealthHandler {
	return &HealthHandler{lookups: lookups}
}

func (h *HealthHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.lookups.Ping(ctx); err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, gin.H{
		"status":    "ok",
		"database":  "up",
		"timestamp": time.Now().UTC(),
	})
}
