package dto

import (
	"meetingmind/internal/app/model"
)

// SelectionInput anchors a comment in the transcript
type SelectionInput struct {
	ParagraphIndex int    `json:"paragraph_index" binding:"min=0"`
	StartOffset    int    `json:"start_offset" binding:"min=0"`
	EndOffset      int    `json:"end_offset" binding:"gtefield=StartOffset"`
	SelectedText   string `json:"selected_text" binding:"max=5000"`
	ContextBefore  string `json:"context_before" binding:"max=500"`
	ContextAfter   string `json:"context_after" binding:"max=500"`
}

// Model converts the input to the stored selection
func (s SelectionInput) Model() model.Selection {
	return model.Selection{
		ParagraphIndex: s.ParagraphIndex,
		StartOffset:    s.StartOffset,
		EndOffset:      s.EndOffset,
		SelectedText:   s.SelectedText,
		ContextBefore:  s.ContextBefore,
		ContextAfter:   s.ContextAfter,
	}
}

// CreateCommentRequest is the body for an authenticated comment
type CreateCommentRequest struct {
	Content     string         `json:"content" binding:"required,max=5000"`
	Selection   SelectionInput `json:"selection"`
	ParentID    *string        `json:"parent_id" binding:"omitempty,uuid"`
	AuthorColor string         `json:"author_color" binding:"omitempty,hexcolor"`
}

// UpdateCommentRequest edits a comment's text
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// PublicCommentRequest is a comment left through a share link
type PublicCommentRequest struct {
	Token       string         `json:"token" binding:"required,min=8,max=128"`
	AuthorName  string         `json:"author_name" binding:"required,max=100"`
	AuthorColor string         `json:"author_color" binding:"omitempty,hexcolor"`
	Content     string         `json:"content" binding:"required,max=5000"`
	Selection   SelectionInput `json:"selection"`
	ParentID    *string        `json:"parent_id" binding:"omitempty,uuid"`
}
