package dto

import (
	"time"

	"meetingmind/internal/app/model"
)

// TranslateRequest is the body of POST /meetings/{id}/translate
type TranslateRequest struct {
	Language string `json:"language" binding:"required,min=2,max=10"`
	Force    bool   `json:"force"`
}

// TranslateQuery selects a cached translation
type TranslateQuery struct {
	Lang string `form:"lang" binding:"required,min=2,max=10"`
}

// TranslationResponse is a translated summary
type TranslationResponse struct {
	Language     string             `json:"language"`
	Summary      *model.Summary     `json:"summary,omitempty"`
	ActionItems  []model.ActionItem `json:"action_items"`
	TranslatedAt time.Time          `json:"translated_at"`
	Cached       bool               `json:"cached"`
}
