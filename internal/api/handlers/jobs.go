package handlers

import (
	"errors"
	"net/http"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/scheduler"

	"github.com/gin-gonic/gin"
)

// JobsHandler exposes the scheduled jobs for manual triggering
type JobsHandler struct {
	scheduler *scheduler.Scheduler
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(sched *scheduler.Scheduler) *JobsHandler {
	return &JobsHandler{scheduler: sched}
}

// ListJobs lists the registered job names
// @Summary List scheduled jobs
// @Tags jobs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /jobs [get]
func (h *JobsHandler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.scheduler.JobNames()})
}

// RunJob triggers one job outside its schedule, with the same idempotency
// and per-record isolation as a timer-driven run
// @Summary Trigger a job manually
// @Tags jobs
// @Produce json
// @Param name path string true "Job name"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /jobs/{name}/run [post]
func (h *JobsHandler) RunJob(c *gin.Context) {
	name := c.Param("name")
	if err := h.scheduler.RunNow(c.Request.Context(), name); err != nil {
		if errors.Is(err, scheduler.ErrUnknownJob) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": name, "status": "completed"})
}
