package services

import (
	"context"

	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/app/clock"
	apperrors "meetingmind/internal/app/errors"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/repository"
)

// NotesServiceImpl implements NotesService
type NotesServiceImpl struct {
	store  repository.Store
	shares shareResolver
	logger *zap.Logger
}

// NewNotesService creates a new notes service
func NewNotesService(store repository.Store, clk clock.Clock, logger *zap.Logger) NotesService {
	return &NotesServiceImpl{
		store:  store,
		shares: shareResolver{store: store, clock: clk},
		logger: logger.Named("notes"),
	}
}

// GetNotes returns the shared notes of a token; an unwritten document is empty at version 0
func (s *NotesServiceImpl) GetNotes(ctx context.Context, token string) (*model.Notes, error) {
	share, m, err := s.shares.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	n, err := s.store.GetNotes(ctx, m.ID, share.Token)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return &model.Notes{MeetingID: m.ID, ShareToken: share.Token}, nil
		}
		return nil, errors.FromStore(err, "notes")
	}
	return n, nil
}

// UpdateNotes overwrites the document; the last writer wins
func (s *NotesServiceImpl) UpdateNotes(ctx context.Context, req *dto.UpdateNotesRequest) (*model.Notes, error) {
	share, m, err := s.shares.resolve(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	n, err := s.store.UpsertNotes(ctx, &model.Notes{
		MeetingID:   m.ID,
		ShareToken:  share.Token,
		Content:     req.Content,
		EditedBy:    req.EditedBy,
		EditorColor: colorOrDefault(req.EditorColor),
	})
	if err != nil {
		return nil, errors.FromStore(err, "notes")
	}
	s.logger.Debug("Notes updated", zap.String("meeting_id", m.ID), zap.Int("version", n.Version))
	return n, nil
}
