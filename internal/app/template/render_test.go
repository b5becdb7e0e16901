package template

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"meetingmind/internal/app/model"
)

func TestRender(t *testing.T) {
	day := time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pattern string
		vars    Variables
		want    string
	}{
		{"all variables", "{project}: {topic} with {participant} ({date})", Variables{Date: day, Participant: "Ana", Project: "Atlas", Topic: "Kickoff"}, "Atlas: Kickoff with Ana (2024-05-17)"},
		{"missing leading value", "{project} - {topic}", Variables{Date: day, Topic: "Retro"}, "Retro"},
		{"repeated placeholder", "{topic}/{topic}", Variables{Date: day, Topic: "x"}, "x/x"},
		{"unknown braces kept", "{team} sync {date}", Variables{Date: day}, "{team} sync 2024-05-17"},
		{"no placeholders", "Weekly standup", Variables{}, "Weekly standup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.pattern, tt.vars))
		})
	}
}

func TestApply(t *testing.T) {
	desc := "Notes for {project}"
	tpl := &model.Template{TitlePattern: "{topic} review", DescriptionPattern: &desc}

	r := Apply(tpl, Variables{Project: "Atlas", Topic: "Design"})
	assert.Equal(t, "Design review", r.Title)
	if assert.NotNil(t, r.Description) {
		assert.Equal(t, "Notes for Atlas", *r.Description)
	}

	r = Apply(&model.Template{TitlePattern: "Sync"}, Variables{})
	assert.Nil(t, r.Description)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"date", "topic"}, Placeholders("{date} {topic} {date} {other}"))
	assert.Empty(t, Placeholders("plain"))
}
