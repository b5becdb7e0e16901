package dto

import (
	"time"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/app/template"
)

// CreateTemplateRequest is the body of POST /templates
type CreateTemplateRequest struct {
	Name               string  `json:"name" binding:"required,max=100"`
	TitlePattern       string  `json:"title_pattern" binding:"required,max=200"`
	DescriptionPattern *string `json:"description_pattern" binding:"omitempty,max=2000"`
	IsDefault          bool    `json:"is_default"`
}

// UpdateTemplateRequest is the body of PATCH /templates/{id}
type UpdateTemplateRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=1,max=100"`
	TitlePattern       *string `json:"title_pattern" binding:"omitempty,min=1,max=200"`
	DescriptionPattern *string `json:"description_pattern" binding:"omitempty,max=2000"`
	IsDefault          *bool   `json:"is_default"`
}

// Validate requires at least one field
func (r *UpdateTemplateRequest) Validate() error {
	if r.Name == nil && r.TitlePattern == nil && r.DescriptionPattern == nil && r.IsDefault == nil {
		return errors.NewValidationError("Validation failed", map[string]string{"request": "no fields to update"})
	}
	return nil
}

// RenderTemplateRequest supplies the template variables
type RenderTemplateRequest struct {
	Date        *time.Time `json:"date"`
	Participant string     `json:"participant" binding:"max=100"`
	Project     string     `json:"project" binding:"max=100"`
	Topic       string     `json:"topic" binding:"max=100"`
}

// Variables converts the request for rendering
func (r *RenderTemplateRequest) Variables() template.Variables {
	v := template.Variables{Participant: r.Participant, Project: r.Project, Topic: r.Topic}
	if r.Date != nil {
		v.Date = *r.Date
	}
	return v
}
