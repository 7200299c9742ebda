package handlers

import (
	"net/http"
	"strconv"

	"github.com/careercompass/api/internal/services"
	"github.com/careercompass/api/internal/utils"
	"github.com/gin-gonic/gin"
)

type TrackingHandler struct {
	svc services.TrackingService
}

func NewTrackingHandler(svc services.TrackingService) *TrackingHandler {
	return &TrackingHandler{svc: svc}
}

func (h *TrackingHandler) History(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TrackingHandler.History", "limit must be an integer", nil))
		return
	}

	out, err := h.svc.ListHistory(c.Request.Context(), uid, int(limit))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, out)
}

func (h *TrackingHandler) Checklist(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	careerID, ok := queryInt(c, "careerId")
	if !ok {
		writeError(c, utils.E(utils.CodeInvalidArgument, "TrackingHandler.Checklist", "careerId must be an integer", nil))
		return
	}

	var filter *int64
	if careerID != 0 {
		filter = &careerID
	}
	out, err := h.svc.ListChecklist(c.Request.Context(), uid, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, out)
}

type BootstrapRequest struct {
	CareerID int64 `json:"careerId" binding:"required,gt=0"`
}

func (h *TrackingHandler) Bootstrap(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	var req BootstrapRequest
	if !bindJSON(c, &req, "TrackingHandler.Bootstrap", "Invalid checklist bootstrap payload") {
		return
	}

	out, err := h.svc.BootstrapChecklist(c.Request.Context(), uid, req.CareerID)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusCreated, out)
}

type ChecklistUpdateRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

func (h *TrackingHandler) UpdateItem(c *gin.Context) {
	const op = "TrackingHandler.UpdateItem"

	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || itemID <= 0 {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "itemId must be a positive integer", nil))
		return
	}
	var req ChecklistUpdateRequest
	if !bindJSON(c, &req, op, "Invalid checklist update payload") {
		return
	}

	out, err := h.svc.SetChecklistCompletion(c.Request.Context(), uid, itemID, *req.Completed)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, out)
}
