package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/middleware"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/api/v1/services"
)

// TranscriptionHandler handles the transcription job lifecycle and provider callbacks
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{service: service}
}

// Start handles POST /api/v1/meetings/:id/transcribe
//
// @Summary Start transcription
// @Description Submits the meeting recording to the transcription provider. At most one job per meeting is outstanding.
// @Tags transcription
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Success 202 {object} dto.TranscriptionStatusResponse "Job submitted"
// @Failure 400 {object} errors.APIError "No audio or already transcribed"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Failure 409 {object} errors.APIError "A transcription job is already running"
// @Failure 500 {object} errors.APIError "Provider rejected the job"
// @Failure 503 {object} errors.APIError "Transcription is not configured"
// @Router /meetings/{id}/transcribe [post]
func (h *TranscriptionHandler) Start(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	response, err := h.service.StartTranscription(c.Request.Context(), userID(c), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, response)
}

// Status handles GET /api/v1/meetings/:id/transcription
//
// @Summary Poll transcription status
// @Description Reports idle, queued, processing, completed or error. A completed provider job is written to the meeting on the first poll that sees it.
// @Tags transcription
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Success 200 {object} dto.TranscriptionStatusResponse "Current status"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Router /meetings/{id}/transcription [get]
func (h *TranscriptionHandler) Status(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	response, err := h.service.CheckStatus(c.Request.Context(), userID(c), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Reset handles DELETE /api/v1/meetings/:id/transcription
//
// @Summary Abandon a transcription job
// @Description Clears a failed or stuck job so transcription can be started again
// @Tags transcription
// @Param id path string true "Meeting ID" format(uuid)
// @Success 204 "Job cleared"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Router /meetings/{id}/transcription [delete]
func (h *TranscriptionHandler) Reset(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	if err := h.service.ResetTranscription(c.Request.Context(), userID(c), id); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Webhook handles POST /api/v1/webhooks/assemblyai
//
// @Summary Transcription provider callback
// @Description Completes the meeting's transcript. Deliveries that cannot be applied are logged and still acknowledged so the provider does not retry.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param meeting_id query string false "Meeting ID"
// @Param X-Meeting-ID header string false "Meeting ID when the query parameter is absent"
// @Param X-Webhook-Secret header string false "Shared secret when configured"
// @Param payload body dto.WebhookPayload true "Provider notification"
// @Success 200 {object} dto.WebhookResponse "Acknowledged"
// @Failure 400 {object} errors.APIError "Missing meeting_id or malformed payload"
// @Failure 403 {object} errors.APIError "Secret mismatch"
// @Router /webhooks/assemblyai [post]
func (h *TranscriptionHandler) Webhook(c *gin.Context) {
	var query dto.WebhookQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}
	if query.MeetingID == "" {
		query.MeetingID = strings.TrimSpace(c.GetHeader(services.WebhookMeetingHeader))
	}
	if query.MeetingID == "" {
		middleware.HandleError(c, errors.NewBadRequestError(errors.CodeValidation, "meeting_id is required"))
		return
	}

	var payload dto.WebhookPayload
	if err := middleware.ValidateRequest(c, &payload); err != nil {
		middleware.HandleError(c, err)
		return
	}

	secret := c.GetHeader(services.WebhookSecretHeader)
	if err := h.service.HandleWebhook(c.Request.Context(), query.MeetingID, secret, &payload); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{Received: true})
}
