package services

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/app/export"
	"meetingmind/internal/app/repository"
)

// ExportServiceImpl implements ExportService
type ExportServiceImpl struct {
	store  repository.Store
	logger *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(store repository.Store, logger *zap.Logger) ExportService {
	return &ExportServiceImpl{store: store, logger: logger.Named("export")}
}

// ExportMeeting renders one of the caller's meetings as a downloadable document
func (s *ExportServiceImpl) ExportMeeting(ctx context.Context, userID, meetingID string, req *dto.ExportRequest) (*export.Document, error) {
	m, err := ownedMeeting(ctx, s.store, userID, meetingID)
	if err != nil {
		return nil, err
	}
	format, ok := export.ParseFormat(req.Format)
	if !ok {
		return nil, errors.NewValidationError("Validation failed", map[string]string{"format": "must be one of: txt md json xlsx"})
	}
	sections := lo.Map(lo.Uniq(req.Sections), func(name string, _ int) export.Section { return export.Section(name) })

	doc, err := export.Render(m, format, sections)
	if err != nil {
		s.logger.Error("Export failed", zap.String("meeting_id", meetingID), zap.String("format", req.Format), zap.Error(err))
		return nil, errors.NewProcessingError(errors.CodeExportError, "Failed to export meeting")
	}
	return doc, nil
}
