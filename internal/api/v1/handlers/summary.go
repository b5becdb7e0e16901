package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetingmind/internal/api/middleware"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/api/v1/services"
)

// SummaryHandler handles summarization and translation
type SummaryHandler struct {
	summaries    services.SummaryService
	translations services.TranslationService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaries services.SummaryService, translations services.TranslationService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries, translations: translations}
}

// Summarize handles POST /api/v1/meetings/:id/summarize
//
// @Summary Summarize a meeting
// @Description Asks the language model for an overview, key points, decisions, next steps and action items
// @Tags summary
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Success 200 {object} model.Meeting "Meeting with its summary"
// @Failure 400 {object} errors.APIError "Meeting has no transcript"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Failure 500 {object} errors.APIError "Summarization failed"
// @Failure 503 {object} errors.APIError "Summarization is not configured"
// @Router /meetings/{id}/summarize [post]
func (h *SummaryHandler) Summarize(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	meeting, err := h.summaries.Summarize(c.Request.Context(), userID(c), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

// GetTranslation handles GET /api/v1/meetings/:id/translate
//
// @Summary Get a cached translation
// @Tags summary
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Param lang query string true "Language code"
// @Success 200 {object} dto.TranslationResponse "Cached translation"
// @Failure 404 {object} errors.APIError "Meeting or translation not found"
// @Router /meetings/{id}/translate [get]
func (h *SummaryHandler) GetTranslation(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	var query dto.TranslateQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.translations.GetTranslation(c.Request.Context(), userID(c), id, query.Lang)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Translate handles POST /api/v1/meetings/:id/translate
//
// @Summary Translate the summary
// @Description Translates the summary and action items, caching the result per language. Set force to bypass the cache.
// @Tags summary
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Param translation body dto.TranslateRequest true "Target language"
// @Success 200 {object} dto.TranslationResponse "Translation"
// @Failure 400 {object} errors.APIError "Meeting has no summary"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Failure 500 {object} errors.APIError "Translation failed"
// @Failure 503 {object} errors.APIError "Translation is not configured"
// @Router /meetings/{id}/translate [post]
func (h *SummaryHandler) Translate(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	var req dto.TranslateRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.translations.Translate(c.Request.Context(), userID(c), id, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
