package provider

import (
	"context"

	"meetingmind/internal/app/model"
)

// SummaryResult is what a language model extracts from a transcript
type SummaryResult struct {
	Summary     model.Summary
	ActionItems []model.ActionItem
}

// LanguageModel summarizes transcripts and translates the results
type LanguageModel interface {
	Name() string
	Summarize(ctx context.Context, transcript string) (*SummaryResult, error)
	Translate(ctx context.Context, language string, summary *model.Summary, items []model.ActionItem) (*SummaryResult, error)
}
