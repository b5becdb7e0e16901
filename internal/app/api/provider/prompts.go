package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"meetingmind/internal/app/model"
)

// MaxTranscriptChars bounds the transcript sent to a language model
const MaxTranscriptChars = 100_000

// SummarySystemPrompt instructs the model to answer with the summary JSON document
const SummarySystemPrompt = `You are an assistant that analyses meeting transcripts.
Respond with a single JSON object and nothing else, using this shape:
{"overview": string, "key_points": [string], "decisions": [string], "next_steps": [string],
 "action_items": [{"task": string, "assignee": string|null, "due_date": string|null, "priority": "high"|"medium"|"low"}]}
Use an empty array when a section has no entries. Do not invent assignees or dates.`

// TranslateSystemPrompt instructs the model to translate the summary JSON document
const TranslateSystemPrompt = `You translate meeting summaries. Translate every string value of the JSON object
you receive into the requested language, keep the keys and structure unchanged, keep priority values
in English and respond with the JSON object only.`

// SummaryUserPrompt wraps the transcript for the summary request
func SummaryUserPrompt(transcript string) string {
	if len(transcript) > MaxTranscriptChars {
		transcript = transcript[:MaxTranscriptChars]
	}
	return "Here is the meeting transcript to summarize:\n\n" + transcript
}

// TranslateUserPrompt renders the content to translate as JSON
func TranslateUserPrompt(language string, summary *model.Summary, items []model.ActionItem) (string, error) {
	doc := summaryDocument{ActionItems: lo.Map(items, func(it model.ActionItem, _ int) actionItemDocument {
		return actionItemDocument{Task: it.Task, Assignee: it.Assignee, DueDate: it.DueDate, Priority: string(it.Priority)}
	})}
	if summary != nil {
		doc.Overview = summary.Overview
		doc.KeyPoints = summary.KeyPoints
		doc.Decisions = summary.Decisions
		doc.NextSteps = summary.NextSteps
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode translation input: %w", err)
	}
	return fmt.Sprintf("Target language: %s\n\n%s", language, raw), nil
}

type actionItemDocument struct {
	Task     string  `json:"task"`
	Assignee *string `json:"assignee"`
	DueDate  *string `json:"due_date"`
	Priority string  `json:"priority"`
}

type summaryDocument struct {
	Overview    string               `json:"overview"`
	KeyPoints   []string             `json:"key_points"`
	Decisions   []string             `json:"decisions"`
	NextSteps   []string             `json:"next_steps"`
	ActionItems []actionItemDocument `json:"action_items"`
}

// ParseSummary decodes a model reply, tolerating markdown code fences around the JSON
func ParseSummary(raw string) (*SummaryResult, error) {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var doc summaryDocument
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}

	items := lo.FilterMap(doc.ActionItems, func(it actionItemDocument, _ int) (model.ActionItem, bool) {
		task := strings.TrimSpace(it.Task)
		return model.ActionItem{
			Task:     task,
			Assignee: blankToNil(it.Assignee),
			DueDate:  blankToNil(it.DueDate),
			Priority: model.NormalizePriority(it.Priority),
		}, task != ""
	})

	return &SummaryResult{
		Summary: model.Summary{
			Overview:  strings.TrimSpace(doc.Overview),
			KeyPoints: orEmpty(doc.KeyPoints),
			Decisions: orEmpty(doc.Decisions),
			NextSteps: orEmpty(doc.NextSteps),
		},
		ActionItems: items,
	}, nil
}

// MergeCompletion carries the completion flags of the source items over to translated ones
func MergeCompletion(source, translated []model.ActionItem) []model.ActionItem {
	for i := range translated {
		if i < len(source) {
			translated[i].Completed = source[i].Completed
		}
	}
	return translated
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
