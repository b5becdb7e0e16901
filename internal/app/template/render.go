// Package template fills meeting title and description patterns.
package template

import (
	"regexp"
	"strings"
	"time"

	"meetingmind/internal/app/model"
)

// DateLayout is how {date} is rendered
const DateLayout = "2006-01-02"

// Variables are the values substituted into a pattern
type Variables struct {
	Date        time.Time `json:"date"`
	Participant string    `json:"participant"`
	Project     string    `json:"project"`
	Topic       string    `json:"topic"`
}

// Rendered is the outcome of applying a template
type Rendered struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

var (
	placeholder = regexp.MustCompile(`\{(date|participant|project|topic)\}`)
	spaces      = regexp.MustCompile(`\s{2,}`)
)

// Render substitutes the known placeholders; unknown braces are kept verbatim.
// Missing values collapse so "{project} - {topic}" with no project yields the topic alone.
func Render(pattern string, vars Variables) string {
	if vars.Date.IsZero() {
		vars.Date = time.Now()
	}
	out := placeholder.ReplaceAllStringFunc(pattern, func(m string) string {
		switch m {
		case "{date}":
			return vars.Date.Format(DateLayout)
		case "{participant}":
			return vars.Participant
		case "{project}":
			return vars.Project
		default:
			return vars.Topic
		}
	})
	out = spaces.ReplaceAllString(out, " ")
	return strings.Trim(out, " -:|,")
}

// Apply renders both patterns of t
func Apply(t *model.Template, vars Variables) Rendered {
	r := Rendered{Title: Render(t.TitlePattern, vars)}
	if t.DescriptionPattern != nil {
		d := Render(*t.DescriptionPattern, vars)
		r.Description = &d
	}
	return r
}

// Placeholders lists the variables a pattern uses
func Placeholders(pattern string) []string {
	matches := placeholder.FindAllStringSubmatch(pattern, -1)
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
