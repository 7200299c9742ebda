package handlers

import (
	"net/http"

	"github.com/careercompass/api/internal/models"
	"github.com/careercompass/api/internal/services"
	"github.com/careercompass/api/internal/utils"
	"github.com/gin-gonic/gin"
)

type JobsHandler struct {
	svc services.JobsService
}

func NewJobsHandler(svc services.JobsService) *JobsHandler {
	return &JobsHandler{svc: svc}
}

func (h *JobsHandler) List(c *gin.Context) {
	const op = "JobsHandler.List"

	limit, ok := queryInt(c, "limit")
	if !ok {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "limit must be an integer", nil))
		return
	}
	careerID, ok := queryInt(c, "careerId")
	if !ok {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "careerId must be an integer", nil))
		return
	}

	f := models.JobFilter{Query: c.Query("q"), Limit: int(limit)}
	if careerID != 0 {
		f.CareerID = &careerID
	}

	out, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, out)
}

type SyncRequest struct {
	Limit  *int   `json:"limit" binding:"omitempty,gt=0,max=200"`
	Search string `json:"search" binding:"max=120"`
}

func (h *JobsHandler) Sync(c *gin.Context) {
	var req SyncRequest
	// an empty body means defaults
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req, "JobsHandler.Sync", "Invalid jobs sync payload") {
			return
		}
	}

	in := services.SyncInput{Search: req.Search, Trigger: models.TriggerAPI}
	if req.Limit != nil {
		in.Limit = *req.Limit
	}

	out, err := h.svc.Sync(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusAccepted, out)
}

func (h *JobsHandler) Runs(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobsHandler.Runs", "limit must be an integer", nil))
		return
	}

	out, err := h.svc.RecentRuns(c.Request.Context(), int(limit))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, out)
}
