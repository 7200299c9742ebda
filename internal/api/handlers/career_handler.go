package handlers

import (
	"net/http"

	"github.com/careercompass/api/internal/services"
	"github.com/gin-gonic/gin"
)

type CareerHandler struct {
	svc services.CareerService
}

func NewCareerHandler(svc services.CareerService) *CareerHandler {
	return &CareerHandler{svc: svc}
}

func (h *CareerHandler) Paths(c *gin.Context) {
	out, err := h.svc.Paths(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, out)
}
