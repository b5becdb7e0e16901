package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/app/clock"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/repository"
	"meetingmind/internal/app/template"
)

// TemplateServiceImpl implements TemplateService
type TemplateServiceImpl struct {
	store  repository.Store
	clock  clock.Clock
	logger *zap.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(store repository.Store, clk clock.Clock, logger *zap.Logger) TemplateService {
	return &TemplateServiceImpl{store: store, clock: clk, logger: logger.Named("templates")}
}

// ListTemplates lists the caller's templates
func (s *TemplateServiceImpl) ListTemplates(ctx context.Context, userID string) ([]model.Template, error) {
	templates, err := s.store.ListTemplates(ctx, userID)
	if err != nil {
		return nil, errors.FromStore(err, "templates")
	}
	if templates == nil {
		templates = []model.Template{}
	}
	return templates, nil
}

// GetTemplate returns one of the caller's templates
func (s *TemplateServiceImpl) GetTemplate(ctx context.Context, userID, templateID string) (*model.Template, error) {
	t, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, errors.FromStore(err, "template")
	}
	if t.UserID != userID {
		return nil, errors.NewNotFoundError("template")
	}
	return t, nil
}

// CreateTemplate stores a new template; a new default replaces the previous one
func (s *TemplateServiceImpl) CreateTemplate(ctx context.Context, userID string, req *dto.CreateTemplateRequest) (*model.Template, error) {
	t := &model.Template{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Name:               req.Name,
		TitlePattern:       req.TitlePattern,
		DescriptionPattern: req.DescriptionPattern,
		IsDefault:          req.IsDefault,
	}
	if err := s.store.CreateTemplate(ctx, t); err != nil {
		return nil, errors.FromStore(err, "template")
	}
	return t, nil
}

// UpdateTemplate applies the supplied fields
func (s *TemplateServiceImpl) UpdateTemplate(ctx context.Context, userID, templateID string, req *dto.UpdateTemplateRequest) (*model.Template, error) {
	t, err := s.GetTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.TitlePattern != nil {
		t.TitlePattern = *req.TitlePattern
	}
	if req.DescriptionPattern != nil {
		if *req.DescriptionPattern == "" {
			t.DescriptionPattern = nil
		} else {
			t.DescriptionPattern = req.DescriptionPattern
		}
	}
	if req.IsDefault != nil {
		t.IsDefault = *req.IsDefault
	}
	if err := s.store.UpdateTemplate(ctx, t); err != nil {
		return nil, errors.FromStore(err, "template")
	}
	return t, nil
}

// DeleteTemplate removes one of the caller's templates
func (s *TemplateServiceImpl) DeleteTemplate(ctx context.Context, userID, templateID string) error {
	if _, err := s.GetTemplate(ctx, userID, templateID); err != nil {
		return err
	}
	if err := s.store.DeleteTemplate(ctx, templateID); err != nil {
		return errors.FromStore(err, "template")
	}
	return nil
}

// RenderTemplate previews a template with the given variables
func (s *TemplateServiceImpl) RenderTemplate(ctx context.Context, userID, templateID string, req *dto.RenderTemplateRequest) (*template.Rendered, error) {
	t, err := s.GetTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}
	vars := req.Variables()
	if vars.Date.IsZero() {
		vars.Date = s.clock.Now()
	}
	rendered := template.Apply(t, vars)
	return &rendered, nil
}
