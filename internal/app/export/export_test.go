package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"meetingmind/internal/app/model"
)

func sampleMeeting() *model.Meeting {
	transcript := "Speaker A: Welcome everyone.\n\nSpeaker B: Thanks.\n"
	assignee := "Ana"
	return &model.Meeting{
		ID:           "m-1",
		Title:        "Q3 Planning / Kickoff",
		Transcript:   &transcript,
		Participants: []string{"Speaker A", "Speaker B"},
		Duration:     95,
		Summary: &model.Summary{
			Overview:  "Planned the quarter.",
			KeyPoints: []string{"Hiring"},
			Decisions: []string{"Ship v2"},
		},
		ActionItems: []model.ActionItem{
			{Task: "Draft roadmap", Assignee: &assignee, Priority: model.PriorityHigh, Completed: true},
			{Task: "Book offsite", Priority: model.PriorityLow},
		},
		CreatedAt: time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Q3-Planning-Kickoff-2024-07-01.md", Filename(sampleMeeting(), FormatMarkdown))
	assert.Equal(t, "meeting-0001-01-01.txt", Filename(&model.Meeting{Title: "///"}, FormatText))
}

func TestRenderMarkdown(t *testing.T) {
	doc, err := Render(sampleMeeting(), FormatMarkdown, nil)
	require.NoError(t, err)

	body := string(doc.Data)
	assert.Equal(t, "text/markdown; charset=utf-8", doc.ContentType)
	assert.True(t, strings.HasPrefix(body, "# Q3 Planning / Kickoff\n"))
	assert.Contains(t, body, "**Duration:** 1m35s")
	assert.Contains(t, body, "- [x] Draft roadmap (@Ana, high)")
	assert.Contains(t, body, "- [ ] Book offsite (low)")
	assert.Contains(t, body, "### Decisions\n\n- Ship v2")
	assert.Contains(t, body, "## Transcript")
}

func TestRenderTextSections(t *testing.T) {
	doc, err := Render(sampleMeeting(), FormatText, []Section{SectionActionItems})
	require.NoError(t, err)

	body := string(doc.Data)
	assert.Contains(t, body, "ACTION ITEMS")
	assert.NotContains(t, body, "SUMMARY")
	assert.NotContains(t, body, "TRANSCRIPT")
}

func TestRenderJSON(t *testing.T) {
	doc, err := Render(sampleMeeting(), FormatJSON, []Section{SectionSummary})
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(doc.Data, &out))
	assert.Equal(t, "m-1", out["id"])
	assert.Contains(t, out, "summary")
	assert.NotContains(t, out, "transcript")
	assert.NotContains(t, out, "action_items")
}

func TestRenderExcel(t *testing.T) {
	doc, err := Render(sampleMeeting(), FormatExcel, nil)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(doc.Data)
	require.NoError(t, err)

	items, ok := file.Sheet["Action Items"]
	require.True(t, ok)
	require.Len(t, items.Rows, 3)
	assert.Equal(t, "Draft roadmap", items.Rows[1].Cells[0].Value)
	assert.Equal(t, "Ana", items.Rows[1].Cells[1].Value)

	transcript, ok := file.Sheet["Transcript"]
	require.True(t, ok)
	assert.Len(t, transcript.Rows, 3)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("PK")))
}

func TestRenderUnsupported(t *testing.T) {
	_, err := Render(sampleMeeting(), Format("pdf"), nil)
	assert.Error(t, err)

	_, ok := ParseFormat("PDF")
	assert.False(t, ok)
	f, ok := ParseFormat("XLSX")
	assert.True(t, ok)
	assert.Equal(t, FormatExcel, f)
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Paragraphs("a\r\n\r\n  b  \n"))
}
