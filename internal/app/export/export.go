// Package export renders a meeting as a downloadable document.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tealeg/xlsx"

	"meetingmind/internal/app/model"
)

// Format of an exported document
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatExcel    Format = "xlsx"
)

// Section of a meeting that can be exported
type Section string

const (
	SectionSummary      Section = "summary"
	SectionActionItems  Section = "action_items"
	SectionTranscript   Section = "transcript"
	SectionParticipants Section = "participants"
)

// AllSections is used when the caller selects none
var AllSections = []Section{SectionSummary, SectionActionItems, SectionParticipants, SectionTranscript}

// Document is a rendered export
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Render produces the document for m in format, restricted to sections
func Render(m *model.Meeting, format Format, sections []Section) (*Document, error) {
	if len(sections) == 0 {
		sections = AllSections
	}
	want := lo.SliceToMap(sections, func(s Section) (Section, bool) { return s, true })

	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case FormatText:
		data, contentType = renderText(m, want), "text/plain; charset=utf-8"
	case FormatMarkdown:
		data, contentType = renderMarkdown(m, want), "text/markdown; charset=utf-8"
	case FormatJSON:
		data, err = renderJSON(m, want)
		contentType = "application/json"
	case FormatExcel:
		data, err = renderExcel(m, want)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return &Document{
		Filename:    Filename(m, format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Filename derives a safe download name from the meeting title
func Filename(m *model.Meeting, format Format) string {
	base := strings.Trim(unsafeChars.ReplaceAllString(strings.TrimSpace(m.Title), "-"), "-.")
	if base == "" {
		base = "meeting"
	}
	return fmt.Sprintf("%s-%s.%s", base, m.CreatedAt.Format("2006-01-02"), format)
}

func renderText(m *model.Meeting, want map[Section]bool) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", m.Title, strings.Repeat("=", len(m.Title)))
	fmt.Fprintf(&b, "Date: %s\n", meetingDate(m).Format(time.RFC1123))
	if m.Duration > 0 {
		fmt.Fprintf(&b, "Duration: %s\n", time.Duration(m.Duration)*time.Second)
	}

	if want[SectionParticipants] && len(m.Participants) > 0 {
		fmt.Fprintf(&b, "\nPARTICIPANTS\n%s\n", strings.Join(m.Participants, ", "))
	}
	if want[SectionSummary] && m.Summary != nil {
		fmt.Fprintf(&b, "\nSUMMARY\n%s\n", m.Summary.Overview)
		writeList(&b, "Key points", "- ", m.Summary.KeyPoints)
		writeList(&b, "Decisions", "- ", m.Summary.Decisions)
		writeList(&b, "Next steps", "- ", m.Summary.NextSteps)
	}
	if want[SectionActionItems] && len(m.ActionItems) > 0 {
		b.WriteString("\nACTION ITEMS\n")
		for _, item := range m.ActionItems {
			mark := " "
			if item.Completed {
				mark = "x"
			}
			fmt.Fprintf(&b, "[%s] %s%s\n", mark, item.Task, itemMeta(item))
		}
	}
	if want[SectionTranscript] && m.HasTranscript() {
		fmt.Fprintf(&b, "\nTRANSCRIPT\n%s\n", *m.Transcript)
	}
	return []byte(b.String())
}

func renderMarkdown(m *model.Meeting, want map[Section]bool) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Title)
	fmt.Fprintf(&b, "**Date:** %s\n", meetingDate(m).Format("January 2, 2006"))
	if m.Duration > 0 {
		fmt.Fprintf(&b, "**Duration:** %s\n", time.Duration(m.Duration)*time.Second)
	}
	if m.Description != nil && *m.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", *m.Description)
	}

	if want[SectionParticipants] && len(m.Participants) > 0 {
		b.WriteString("\n## Participants\n\n")
		for _, p := range m.Participants {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	if want[SectionSummary] && m.Summary != nil {
		fmt.Fprintf(&b, "\n## Summary\n\n%s\n", m.Summary.Overview)
		writeList(&b, "### Key Points", "- ", m.Summary.KeyPoints)
		writeList(&b, "### Decisions", "- ", m.Summary.Decisions)
		writeList(&b, "### Next Steps", "- ", m.Summary.NextSteps)
	}
	if want[SectionActionItems] && len(m.ActionItems) > 0 {
		b.WriteString("\n## Action Items\n\n")
		for _, item := range m.ActionItems {
			mark := " "
			if item.Completed {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s%s\n", mark, item.Task, itemMeta(item))
		}
	}
	if want[SectionTranscript] && m.HasTranscript() {
		fmt.Fprintf(&b, "\n## Transcript\n\n%s\n", *m.Transcript)
	}
	return []byte(b.String())
}

type jsonExport struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  *string            `json:"description,omitempty"`
	Date         time.Time          `json:"date"`
	Duration     int                `json:"duration"`
	Participants []string           `json:"participants,omitempty"`
	Summary      *model.Summary     `json:"summary,omitempty"`
	ActionItems  []model.ActionItem `json:"action_items,omitempty"`
	Transcript   *string            `json:"transcript,omitempty"`
}

func renderJSON(m *model.Meeting, want map[Section]bool) ([]byte, error) {
	doc := jsonExport{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Date:        meetingDate(m),
		Duration:    m.Duration,
	}
	if want[SectionParticipants] {
		doc.Participants = m.Participants
	}
	if want[SectionSummary] {
		doc.Summary = m.Summary
	}
	if want[SectionActionItems] {
		doc.ActionItems = m.ActionItems
	}
	if want[SectionTranscript] {
		doc.Transcript = m.Transcript
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

func renderExcel(m *model.Meeting, want map[Section]bool) ([]byte, error) {
	file := xlsx.NewFile()

	overview, err := file.AddSheet("Overview")
	if err != nil {
		return nil, err
	}
	addRow(overview, "Title", m.Title)
	addRow(overview, "Date", meetingDate(m).Format(time.RFC3339))
	addRow(overview, "Duration (s)", fmt.Sprint(m.Duration))
	if want[SectionParticipants] {
		addRow(overview, "Participants", strings.Join(m.Participants, ", "))
	}
	if want[SectionSummary] && m.Summary != nil {
		addRow(overview, "Summary", m.Summary.Overview)
		for _, p := range m.Summary.KeyPoints {
			addRow(overview, "Key point", p)
		}
		for _, d := range m.Summary.Decisions {
			addRow(overview, "Decision", d)
		}
		for _, s := range m.Summary.NextSteps {
			addRow(overview, "Next step", s)
		}
	}

	if want[SectionActionItems] {
		sheet, err := file.AddSheet("Action Items")
		if err != nil {
			return nil, err
		}
		addRow(sheet, "Task", "Assignee", "Due Date", "Priority", "Completed")
		for _, item := range m.ActionItems {
			addRow(sheet, item.Task, deref(item.Assignee), deref(item.DueDate), string(item.Priority), fmt.Sprint(item.Completed))
		}
	}

	if want[SectionTranscript] && m.HasTranscript() {
		sheet, err := file.AddSheet("Transcript")
		if err != nil {
			return nil, err
		}
		addRow(sheet, "Paragraph", "Text")
		for i, para := range Paragraphs(*m.Transcript) {
			addRow(sheet, fmt.Sprint(i+1), para)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Paragraphs splits a transcript the same way comment anchors index it
func Paragraphs(transcript string) []string {
	parts := strings.Split(strings.ReplaceAll(transcript, "\r\n", "\n"), "\n")
	return lo.Filter(lo.Map(parts, func(p string, _ int) string { return strings.TrimSpace(p) }),
		func(p string, _ int) bool { return p != "" })
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
}

func writeList(b *strings.Builder, heading, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", heading)
	if strings.HasPrefix(heading, "#") {
		b.WriteString("\n")
	}
	for _, it := range items {
		fmt.Fprintf(b, "%s%s\n", bullet, it)
	}
}

func itemMeta(item model.ActionItem) string {
	var parts []string
	if item.Assignee != nil {
		parts = append(parts, "@"+*item.Assignee)
	}
	if item.DueDate != nil {
		parts = append(parts, "due "+*item.DueDate)
	}
	if item.Priority != "" {
		parts = append(parts, string(item.Priority))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func meetingDate(m *model.Meeting) time.Time {
	if m.RecordedAt != nil {
		return *m.RecordedAt
	}
	return m.CreatedAt
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParseFormat validates a requested format
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(s))
	return f, lo.Contains([]Format{FormatText, FormatMarkdown, FormatJSON, FormatExcel}, f)
}
