package handlers

import (
	"net/http"
	"strings"

	"github.com/careercompass/api/internal/api/middleware"
	"github.com/careercompass/api/internal/services"
	"github.com/gin-gonic/gin"
)

type AnalysisHandler struct {
	svc services.AnalysisService
}

func NewAnalysisHandler(svc services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

type RecommendationsRequest struct {
	RiasecCodes []string `json:"riasecCodes" binding:"required,min=1,max=3,dive,oneof=R I A S E C"`
	MbtiCode    string   `json:"mbtiCode" binding:"required,len=4"`
	SkillIDs    []int64  `json:"skillIds" binding:"required,min=1,dive,gt=0"`
}

func (h *AnalysisHandler) Recommendations(c *gin.Context) {
	var req RecommendationsRequest
	if !bindJSON(c, &req, "AnalysisHandler.Recommendations", "Invalid analysis payload") {
		return
	}

	out, err := h.svc.Recommend(c.Request.Context(), middleware.IdentityFrom(c), services.AnalysisInput{
		SkillIDs:    req.SkillIDs,
		RiasecCodes: req.RiasecCodes,
		MbtiCode:    strings.ToUpper(req.MbtiCode),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, out)
}
