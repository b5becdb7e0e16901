package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/middleware"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/api/v1/services"
)

// MeetingHandler handles uploads and meeting CRUD
type MeetingHandler struct {
	meetings services.MeetingService
	insights services.InsightsService
	exports  services.ExportService
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetings services.MeetingService, insights services.InsightsService, exports services.ExportService) *MeetingHandler {
	return &MeetingHandler{meetings: meetings, insights: insights, exports: exports}
}

// Upload handles POST /api/v1/upload
//
// @Summary Upload a meeting recording
// @Description Stores an audio or video recording and creates a meeting for it. The title comes from the form, the chosen or default template, or the file name.
// @Tags meetings
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio or video recording"
// @Param title formData string false "Meeting title"
// @Param description formData string false "Meeting description"
// @Param template_id formData string false "Template used to name the meeting"
// @Param project formData string false "Template project variable"
// @Param topic formData string false "Template topic variable"
// @Param participant formData string false "Template participant variable"
// @Param recorded_at formData string false "Recording time (RFC 3339)"
// @Success 201 {object} dto.UploadResponse "Meeting created"
// @Failure 400 {object} errors.APIError "Missing, empty, oversized or non-media file"
// @Failure 401 {object} errors.APIError "Authentication required"
// @Failure 429 {object} errors.APIError "Rate limited"
// @Failure 500 {object} errors.APIError "Storage failure"
// @Router /upload [post]
func (h *MeetingHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewValidationError("Validation failed", map[string]string{"file": "is required"}))
		return
	}
	defer file.Close()

	var form dto.UploadForm
	if err := middleware.ValidateForm(c, &form); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.meetings.Upload(c.Request.Context(), userID(c), services.UploadFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, &form)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// List handles GET /api/v1/meetings
//
// @Summary List meetings
// @Description Pages through the caller's meetings, newest first, optionally filtered by title
// @Tags meetings
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(100)
// @Param search query string false "Title filter"
// @Success 200 {object} dto.MeetingListResponse "A page of meetings"
// @Failure 400 {object} errors.APIError "Invalid query parameters"
// @Failure 401 {object} errors.APIError "Authentication required"
// @Header 200 {string} X-Total-Count "Total number of meetings"
// @Router /meetings [get]
func (h *MeetingHandler) List(c *gin.Context) {
	var query dto.ListMeetingsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.meetings.ListMeetings(c.Request.Context(), userID(c), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(response.Pagination.Total))
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/meetings/:id
//
// @Summary Get a meeting
// @Tags meetings
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Success 200 {object} model.Meeting "Meeting"
// @Failure 400 {object} errors.APIError "Invalid meeting ID"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Router /meetings/{id} [get]
func (h *MeetingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	meeting, err := h.meetings.GetMeeting(c.Request.Context(), userID(c), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

// Update handles PATCH /api/v1/meetings/:id
//
// @Summary Update a meeting
// @Description Edits the title, description or action items (including completion flags)
// @Tags meetings
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Param meeting body dto.UpdateMeetingRequest true "Fields to change"
// @Success 200 {object} model.Meeting "Updated meeting"
// @Failure 400 {object} errors.APIError "Validation error"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Router /meetings/{id} [patch]
func (h *MeetingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	var req dto.UpdateMeetingRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	meeting, err := h.meetings.UpdateMeeting(c.Request.Context(), userID(c), id, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

// Delete handles DELETE /api/v1/meetings/:id
//
// @Summary Delete a meeting
// @Description Deletes the meeting with its comments, shares, notes and insights. The stored recording is removed best-effort.
// @Tags meetings
// @Param id path string true "Meeting ID" format(uuid)
// @Success 204 "Meeting deleted"
// @Failure 400 {object} errors.APIError "Invalid meeting ID"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Router /meetings/{id} [delete]
func (h *MeetingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	if err := h.meetings.DeleteMeeting(c.Request.Context(), userID(c), id); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Insights handles GET /api/v1/meetings/:id/insights
//
// @Summary Get meeting insights
// @Description Speaker talk time, interruptions, sentiment and engagement computed when the transcript completed
// @Tags meetings
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Success 200 {object} model.Insights "Insights"
// @Failure 404 {object} errors.APIError "Meeting or insights not found"
// @Router /meetings/{id}/insights [get]
func (h *MeetingHandler) Insights(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	insights, err := h.insights.GetInsights(c.Request.Context(), userID(c), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}

// Export handles POST /api/v1/meetings/:id/export
//
// @Summary Export a meeting
// @Description Renders the selected sections as plain text, markdown, JSON or an Excel workbook
// @Tags meetings
// @Accept json
// @Produce octet-stream
// @Param id path string true "Meeting ID" format(uuid)
// @Param export body dto.ExportRequest true "Format and sections"
// @Success 200 {file} file "Exported document"
// @Failure 400 {object} errors.APIError "Validation error"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Failure 500 {object} errors.APIError "Export failed"
// @Router /meetings/{id}/export [post]
func (h *MeetingHandler) Export(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	var req dto.ExportRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	doc, err := h.exports.ExportMeeting(c.Request.Context(), userID(c), id, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
