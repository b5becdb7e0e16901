package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetingmind/internal/api/middleware"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/api/v1/services"
)

// ShareHandler handles share links and the notes edited through them
type ShareHandler struct {
	shares services.ShareService
	notes  services.NotesService
}

// NewShareHandler creates a new share handler
func NewShareHandler(shares services.ShareService, notes services.NotesService) *ShareHandler {
	return &ShareHandler{shares: shares, notes: notes}
}

// Create handles POST /api/v1/meetings/:id/shares
//
// @Summary Create a share link
// @Description Creates a read-only link to the meeting. Without expires_in_hours the link never expires.
// @Tags shares
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Param share body dto.CreateShareRequest false "Expiry"
// @Success 201 {object} dto.ShareResponse "Share link"
// @Failure 400 {object} errors.APIError "Validation error"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Router /meetings/{id}/shares [post]
func (h *ShareHandler) Create(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	var req dto.CreateShareRequest
	if c.Request.ContentLength != 0 {
		if err := middleware.ValidateRequest(c, &req); err != nil {
			middleware.HandleError(c, err)
			return
		}
	}

	share, err := h.shares.CreateShare(c.Request.Context(), userID(c), id, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, share)
}

// List handles GET /api/v1/meetings/:id/shares
//
// @Summary List share links
// @Tags shares
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Success 200 {array} dto.ShareResponse "Share links"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Router /meetings/{id}/shares [get]
func (h *ShareHandler) List(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	shares, err := h.shares.ListShares(c.Request.Context(), userID(c), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, shares)
}

// Delete handles DELETE /api/v1/shares/:token
//
// @Summary Revoke a share link
// @Tags shares
// @Param token path string true "Share token"
// @Success 204 "Share revoked"
// @Failure 403 {object} errors.APIError "Not the creator"
// @Failure 404 {object} errors.APIError "Share not found"
// @Router /shares/{token} [delete]
func (h *ShareHandler) Delete(c *gin.Context) {
	if err := h.shares.DeleteShare(c.Request.Context(), userID(c), c.Param("token")); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetShared handles GET /api/v1/public/shares/:token
//
// @Summary View a shared meeting
// @Tags public
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} dto.SharedMeetingResponse "Read-only meeting"
// @Failure 403 {object} errors.APIError "Share link has expired"
// @Failure 404 {object} errors.APIError "Share not found"
// @Failure 429 {object} errors.APIError "Rate limited"
// @Router /public/shares/{token} [get]
func (h *ShareHandler) GetShared(c *gin.Context) {
	meeting, err := h.shares.GetSharedMeeting(c.Request.Context(), c.Param("token"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

// GetNotes handles GET /api/v1/public/notes
//
// @Summary Load collaborative notes
// @Description Returns the shared notes for a share link, or empty notes at version 0
// @Tags public
// @Produce json
// @Param token query string true "Share token"
// @Success 200 {object} model.Notes "Notes"
// @Failure 403 {object} errors.APIError "Share link has expired"
// @Failure 404 {object} errors.APIError "Share not found"
// @Failure 429 {object} errors.APIError "Rate limited"
// @Router /public/notes [get]
func (h *ShareHandler) GetNotes(c *gin.Context) {
	var query dto.TokenQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	notes, err := h.notes.GetNotes(c.Request.Context(), query.Token)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

// UpdateNotes handles POST /api/v1/public/notes
//
// @Summary Save collaborative notes
// @Description Overwrites the notes; the last writer wins and the version is incremented
// @Tags public
// @Accept json
// @Produce json
// @Param notes body dto.UpdateNotesRequest true "Notes"
// @Success 200 {object} model.Notes "Saved notes"
// @Failure 400 {object} errors.APIError "Validation error"
// @Failure 403 {object} errors.APIError "Share link has expired"
// @Failure 404 {object} errors.APIError "Share not found"
// @Failure 429 {object} errors.APIError "Rate limited"
// @Router /public/notes [post]
func (h *ShareHandler) UpdateNotes(c *gin.Context) {
	var req dto.UpdateNotesRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	notes, err := h.notes.UpdateNotes(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}
