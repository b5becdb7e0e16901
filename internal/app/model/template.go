package model

import "time"

// Template generates meeting titles and descriptions from {date}, {participant}, {project} and {topic}
type Template struct {
	ID                 string    `json:"id" db:"id"`
	UserID             string    `json:"user_id" db:"user_id"`
	Name               string    `json:"name" db:"name"`
	TitlePattern       string    `json:"title_pattern" db:"title_pattern"`
	DescriptionPattern *string   `json:"description_pattern" db:"description_pattern"`
	IsDefault          bool      `json:"is_default" db:"is_default"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for Template
func (Template) TableName() string {
	return "meeting_templates"
}
