package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetingmind/internal/api/middleware"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/api/v1/services"
)

// CommentHandler handles owner and share-link comments
type CommentHandler struct {
	service services.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(service services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// List handles GET /api/v1/meetings/:id/comments
//
// @Summary List comments
// @Tags comments
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Success 200 {array} model.Comment "Comments in creation order"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Router /meetings/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), userID(c), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Create handles POST /api/v1/meetings/:id/comments
//
// @Summary Comment on a transcript selection
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID" format(uuid)
// @Param comment body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} model.Comment "Created comment"
// @Failure 400 {object} errors.APIError "Validation error"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Router /meetings/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	id, ok := pathID(c, "id", "meeting")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	uid, name := middleware.CurrentUser(c)
	comment, err := h.service.CreateComment(c.Request.Context(), uid, name, id, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update handles PATCH /api/v1/comments/:id
//
// @Summary Edit a comment
// @Description Only the author may edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID" format(uuid)
// @Param comment body dto.UpdateCommentRequest true "New text"
// @Success 200 {object} model.Comment "Updated comment"
// @Failure 403 {object} errors.APIError "Not the author"
// @Failure 404 {object} errors.APIError "Comment not found"
// @Router /comments/{id} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "comment")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	comment, err := h.service.UpdateComment(c.Request.Context(), userID(c), id, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /api/v1/comments/:id
//
// @Summary Delete a comment
// @Description The author or the meeting owner may delete a comment; replies are removed with it
// @Tags comments
// @Param id path string true "Comment ID" format(uuid)
// @Success 204 "Comment deleted"
// @Failure 403 {object} errors.APIError "Not allowed"
// @Failure 404 {object} errors.APIError "Comment not found"
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "comment")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), userID(c), id); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListPublic handles GET /api/v1/public/comments
//
// @Summary List comments through a share link
// @Tags public
// @Produce json
// @Param token query string true "Share token"
// @Success 200 {array} model.Comment "Comments"
// @Failure 403 {object} errors.APIError "Share link has expired"
// @Failure 404 {object} errors.APIError "Share not found"
// @Failure 429 {object} errors.APIError "Rate limited"
// @Router /public/comments [get]
func (h *CommentHandler) ListPublic(c *gin.Context) {
	var query dto.TokenQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	comments, err := h.service.ListPublicComments(c.Request.Context(), query.Token)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// CreatePublic handles POST /api/v1/public/comments
//
// @Summary Comment through a share link
// @Tags public
// @Accept json
// @Produce json
// @Param comment body dto.PublicCommentRequest true "Comment"
// @Success 201 {object} model.Comment "Created comment"
// @Failure 400 {object} errors.APIError "Validation error"
// @Failure 403 {object} errors.APIError "Share link has expired"
// @Failure 404 {object} errors.APIError "Share not found"
// @Failure 429 {object} errors.APIError "Rate limited"
// @Router /public/comments [post]
func (h *CommentHandler) CreatePublic(c *gin.Context) {
	var req dto.PublicCommentRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	comment, err := h.service.CreatePublicComment(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
