package handlers

import (
	"net/http"
	"strconv"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TemplateHandler handles HTTP requests for growth templates
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

// CreateTemplate creates a new growth template
// @Summary Create a growth template
// @Description Create an admin-authored growth template. Stage day ranges must be contiguous and non-overlapping.
// @Tags templates
// @Accept json
// @Produce json
// @Param template body service.CreateTemplateRequest true "Template data"
// @Success 201 {object} models.GrowthTemplate
// @Failure 400 {object} ErrorResponse
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req service.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	template, err := h.templateService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplate retrieves a template with its stages
// @Summary Get a growth template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} models.GrowthTemplate
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid template ID"})
		return
	}

	template, err := h.templateService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// ListTemplates lists growth templates
// @Summary List growth templates
// @Tags templates
// @Produce json
// @Param published query bool false "Only published templates"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]interface{}
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	publishedOnly, _ := strconv.ParseBool(c.DefaultQuery("published", "false"))
	limit, offset := paginationParams(c)

	templates, total, err := h.templateService.List(publishedOnly, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
		"total":     total,
	})
}

// DeleteTemplate removes a template
// @Summary Delete a growth template
// @Tags templates
// @Param id path string true "Template ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid template ID"})
		return
	}

	if err := h.templateService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// paginationParams reads limit/offset query parameters with defaults
func paginationParams(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
