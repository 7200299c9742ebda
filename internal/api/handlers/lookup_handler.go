package handlers

import (
	"net/http"

	"github.com/careercompass/api/internal/services"
	"github.com/gin-gonic/gin"
)

type LookupHandler struct {
	svc services.LookupService
}

func NewLookupHandler(svc services.LookupService) *LookupHandler {
	return &LookupHandler{svc: svc}
}

func (h *LookupHandler) Lookups(c *gin.Context) {
	out, err := h.svc.Lookups(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, out)
}

func (h *LookupHandler) WorldStats(c *gin.Context) {
	out, err := h.svc.WorldStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, out)
}
