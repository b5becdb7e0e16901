package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetingmind/internal/api/middleware"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/api/v1/services"
)

// TemplateHandler handles meeting naming templates
type TemplateHandler struct {
	service services.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(service services.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// List handles GET /api/v1/templates
//
// @Summary List templates
// @Tags templates
// @Produce json
// @Success 200 {array} model.Template "Templates"
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context(), userID(c))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

// Get handles GET /api/v1/templates/:id
//
// @Summary Get a template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID" format(uuid)
// @Success 200 {object} model.Template "Template"
// @Failure 404 {object} errors.APIError "Template not found"
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "template")
	if !ok {
		return
	}

	t, err := h.service.GetTemplate(c.Request.Context(), userID(c), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// Create handles POST /api/v1/templates
//
// @Summary Create a template
// @Description Patterns may use {date}, {participant}, {project} and {topic}. A new default replaces the previous one.
// @Tags templates
// @Accept json
// @Produce json
// @Param template body dto.CreateTemplateRequest true "Template"
// @Success 201 {object} model.Template "Created template"
// @Failure 400 {object} errors.APIError "Validation error"
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	t, err := h.service.CreateTemplate(c.Request.Context(), userID(c), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// Update handles PATCH /api/v1/templates/:id
//
// @Summary Update a template
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID" format(uuid)
// @Param template body dto.UpdateTemplateRequest true "Fields to change"
// @Success 200 {object} model.Template "Updated template"
// @Failure 400 {object} errors.APIError "Validation error"
// @Failure 404 {object} errors.APIError "Template not found"
// @Router /templates/{id} [patch]
func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "template")
	if !ok {
		return
	}

	var req dto.UpdateTemplateRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	t, err := h.service.UpdateTemplate(c.Request.Context(), userID(c), id, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /api/v1/templates/:id
//
// @Summary Delete a template
// @Tags templates
// @Param id path string true "Template ID" format(uuid)
// @Success 204 "Template deleted"
// @Failure 404 {object} errors.APIError "Template not found"
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "template")
	if !ok {
		return
	}

	if err := h.service.DeleteTemplate(c.Request.Context(), userID(c), id); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Render handles POST /api/v1/templates/:id/render
//
// @Summary Preview a template
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID" format(uuid)
// @Param variables body dto.RenderTemplateRequest true "Template variables"
// @Success 200 {object} template.Rendered "Rendered title and description"
// @Failure 404 {object} errors.APIError "Template not found"
// @Router /templates/{id}/render [post]
func (h *TemplateHandler) Render(c *gin.Context) {
	id, ok := pathID(c, "id", "template")
	if !ok {
		return
	}

	var req dto.RenderTemplateRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	rendered, err := h.service.RenderTemplate(c.Request.Context(), userID(c), id, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rendered)
}
