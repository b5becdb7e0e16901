package model

import "time"

// Selection anchors a comment to a range within one transcript paragraph.
// The context snippets let clients re-anchor after the transcript is re-indexed.
type Selection struct {
	ParagraphIndex int    `json:"paragraph_index"`
	StartOffset    int    `json:"start_offset"`
	EndOffset      int    `json:"end_offset"`
	SelectedText   string `json:"selected_text"`
	ContextBefore  string `json:"context_before"`
	ContextAfter   string `json:"context_after"`
}

// Valid reports whether the offsets describe a non-negative, ordered range
func (s Selection) Valid() bool {
	return s.ParagraphIndex >= 0 && s.StartOffset >= 0 && s.EndOffset >= s.StartOffset
}

// Comment is an annotation on a meeting transcript
type Comment struct {
	ID          string    `json:"id" db:"id"`
	MeetingID   string    `json:"meeting_id" db:"meeting_id"`
	UserID      *string   `json:"user_id" db:"user_id"`
	AuthorName  string    `json:"author_name" db:"author_name"`
	AuthorColor string    `json:"author_color" db:"author_color"`
	Content     string    `json:"content" db:"content"`
	Selection   Selection `json:"selection" db:"selection"`
	ParentID    *string   `json:"parent_id" db:"parent_id"`
	ShareToken  *string   `json:"share_token,omitempty" db:"share_token"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// OwnedBy reports whether userID authored the comment
func (c *Comment) OwnedBy(userID string) bool {
	return c.UserID != nil && *c.UserID == userID
}
