package dto

import (
	"time"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/app/model"
)

// UploadForm holds the non-file fields of POST /upload
type UploadForm struct {
	Title       string `form:"title" binding:"omitempty,max=200"`
	Description string `form:"description" binding:"omitempty,max=2000"`
	TemplateID  string `form:"template_id" binding:"omitempty,uuid"`
	Project     string `form:"project" binding:"omitempty,max=100"`
	Topic       string `form:"topic" binding:"omitempty,max=100"`
	Participant string `form:"participant" binding:"omitempty,max=100"`
	RecordedAt  string `form:"recorded_at" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// RecordedTime parses RecordedAt; binding has already validated the layout
func (f *UploadForm) RecordedTime() *time.Time {
	if f.RecordedAt == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, f.RecordedAt)
	if err != nil {
		return nil
	}
	return &t
}

// UploadResponse is returned after an upload
type UploadResponse struct {
	Meeting   *model.Meeting `json:"meeting"`
	SignedURL string         `json:"signed_url"`
}

// ListMeetingsQuery filters GET /meetings
type ListMeetingsQuery struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Search string `form:"search" binding:"omitempty,max=200"`
}

// MeetingListResponse is a page of meetings
type MeetingListResponse struct {
	Meetings   []model.Meeting `json:"meetings"`
	Pagination Pagination      `json:"pagination"`
}

// ActionItemInput is an editable action item
type ActionItemInput struct {
	Task      string  `json:"task" binding:"required,max=500"`
	Assignee  *string `json:"assignee" binding:"omitempty,max=100"`
	DueDate   *string `json:"due_date" binding:"omitempty,max=50"`
	Priority  string  `json:"priority" binding:"omitempty,oneof=high medium low"`
	Completed bool    `json:"completed"`
}

// UpdateMeetingRequest is the body of PATCH /meetings/{id}
type UpdateMeetingRequest struct {
	Title       *string           `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string           `json:"description" binding:"omitempty,max=2000"`
	ActionItems []ActionItemInput `json:"action_items" binding:"omitempty,dive"`
}

// Validate requires at least one field
func (r *UpdateMeetingRequest) Validate() error {
	if r.Title == nil && r.Description == nil && r.ActionItems == nil {
		return errors.NewValidationError("Validation failed", map[string]string{"request": "no fields to update"})
	}
	return nil
}

// Patch converts the request to a repository patch
func (r *UpdateMeetingRequest) Patch() model.MeetingPatch {
	patch := model.MeetingPatch{Title: r.Title, Description: r.Description}
	if r.ActionItems != nil {
		patch.ActionItems = make([]model.ActionItem, 0, len(r.ActionItems))
		for _, it := range r.ActionItems {
			patch.ActionItems = append(patch.ActionItems, model.ActionItem{
				Task:      it.Task,
				Assignee:  it.Assignee,
				DueDate:   it.DueDate,
				Priority:  model.NormalizePriority(it.Priority),
				Completed: it.Completed,
			})
		}
	}
	return patch
}
