package handlers

import (
	"net/http"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotebookHandler handles HTTP requests for cultivation notebooks
type NotebookHandler struct {
	notebookService *service.NotebookService
}

// NewNotebookHandler creates a new notebook handler
func NewNotebookHandler(notebookService *service.NotebookService) *NotebookHandler {
	return &NotebookHandler{
		notebookService: notebookService,
	}
}

// CreateNotebook creates a new cultivation notebook
// @Summary Create a notebook
// @Description Create a cultivation notebook. The planted date defaults to today when omitted.
// @Tags notebooks
// @Accept json
// @Produce json
// @Param notebook body service.CreateNotebookRequest true "Notebook data"
// @Success 201 {object} models.Notebook
// @Failure 400 {object} ErrorResponse
// @Router /notebooks [post]
func (h *NotebookHandler) CreateNotebook(c *gin.Context) {
	var req service.CreateNotebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	notebook, err := h.notebookService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notebook)
}

// GetNotebook retrieves a notebook with its derived current day
// @Summary Get a notebook
// @Tags notebooks
// @Produce json
// @Param id path string true "Notebook ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /notebooks/{id} [get]
func (h *NotebookHandler) GetNotebook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notebook ID"})
		return
	}

	notebook, err := h.notebookService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notebook":    notebook,
		"current_day": h.notebookService.CurrentDay(notebook),
	})
}

// ListNotebooks lists a user's notebooks
// @Summary List notebooks
// @Tags notebooks
// @Produce json
// @Param user_id query string true "Owner ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]interface{}
// @Router /notebooks [get]
func (h *NotebookHandler) ListNotebooks(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		return
	}

	limit, offset := paginationParams(c)
	notebooks, total, err := h.notebookService.List(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notebooks": notebooks,
		"total":     total,
	})
}

// ArchiveNotebook archives a notebook
// @Summary Archive a notebook
// @Tags notebooks
// @Param id path string true "Notebook ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /notebooks/{id}/archive [post]
func (h *NotebookHandler) ArchiveNotebook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notebook ID"})
		return
	}

	if err := h.notebookService.Archive(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteNotebook soft-deletes a notebook
// @Summary Soft-delete a notebook
// @Tags notebooks
// @Param id path string true "Notebook ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /notebooks/{id} [delete]
func (h *NotebookHandler) DeleteNotebook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notebook ID"})
		return
	}

	if err := h.notebookService.SoftDelete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HardDeleteNotebook irreversibly removes a notebook
// @Summary Hard-delete a notebook
// @Description Irreversibly remove a notebook and its tracking data.
// @Tags notebooks
// @Param id path string true "Notebook ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /notebooks/{id}/hard [delete]
func (h *NotebookHandler) HardDeleteNotebook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notebook ID"})
		return
	}

	if err := h.notebookService.HardDelete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ComputeProgress recomputes and persists the notebook's progress
// @Summary Recompute progress
// @Tags notebooks
// @Produce json
// @Param id path string true "Notebook ID"
// @Success 200 {object} map[string]int
// @Failure 404 {object} ErrorResponse
// @Router /notebooks/{id}/progress [post]
func (h *NotebookHandler) ComputeProgress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notebook ID"})
		return
	}

	progress, err := h.notebookService.ComputeProgress(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// AttemptStageTransition attempts to advance the notebook to its next stage
// @Summary Attempt stage transition
// @Description Advance to the next stage when today is the stage's last scheduled day and all required observations are recorded true. A blocked gate returns advanced=false, not an error.
// @Tags notebooks
// @Produce json
// @Param id path string true "Notebook ID"
// @Success 200 {object} service.TransitionResult
// @Failure 404 {object} ErrorResponse
// @Router /notebooks/{id}/transition [post]
func (h *NotebookHandler) AttemptStageTransition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notebook ID"})
		return
	}

	result, err := h.notebookService.AttemptStageTransition(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RecordObservation records a boolean observation on the current stage
// @Summary Record an observation
// @Tags notebooks
// @Accept json
// @Produce json
// @Param id path string true "Notebook ID"
// @Param observation body service.RecordObservationRequest true "Observation"
// @Success 200 {object} models.Notebook
// @Failure 400 {object} ErrorResponse
// @Router /notebooks/{id}/observations [post]
func (h *NotebookHandler) RecordObservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notebook ID"})
		return
	}

	var req service.RecordObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	notebook, err := h.notebookService.RecordObservation(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notebook)
}

// RecordDailyLog records the day's progress estimate on the current stage
// @Summary Record a daily log
// @Tags notebooks
// @Accept json
// @Produce json
// @Param id path string true "Notebook ID"
// @Param log body service.RecordDailyLogRequest true "Daily log"
// @Success 200 {object} models.Notebook
// @Failure 400 {object} ErrorResponse
// @Router /notebooks/{id}/daily-logs [post]
func (h *NotebookHandler) RecordDailyLog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notebook ID"})
		return
	}

	var req service.RecordDailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	notebook, err := h.notebookService.RecordDailyLog(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notebook)
}

// GenerateChecklist generates today's checklist for the notebook
// @Summary Generate today's checklist
// @Tags notebooks
// @Produce json
// @Param id path string true "Notebook ID"
// @Success 200 {object} models.Notebook
// @Failure 404 {object} ErrorResponse
// @Router /notebooks/{id}/checklist/generate [post]
func (h *NotebookHandler) GenerateChecklist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notebook ID"})
		return
	}

	notebook, err := h.notebookService.GenerateDailyChecklist(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notebook)
}

// CompleteChecklistItem checks off one checklist item
// @Summary Complete a checklist item
// @Tags notebooks
// @Produce json
// @Param id path string true "Notebook ID"
// @Param itemId path string true "Checklist item ID"
// @Success 200 {object} models.Notebook
// @Failure 404 {object} ErrorResponse
// @Router /notebooks/{id}/checklist/{itemId}/complete [post]
func (h *NotebookHandler) CompleteChecklistItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notebook ID"})
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid checklist item ID"})
		return
	}

	notebook, err := h.notebookService.CompleteChecklistItem(id, itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notebook)
}
