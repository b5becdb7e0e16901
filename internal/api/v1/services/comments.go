package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/app/clock"
	apperrors "meetingmind/internal/app/errors"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/repository"
)

// CommentServiceImpl implements CommentService
type CommentServiceImpl struct {
	store  repository.Store
	shares shareResolver
	logger *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(store repository.Store, clk clock.Clock, logger *zap.Logger) CommentService {
	return &CommentServiceImpl{
		store:  store,
		shares: shareResolver{store: store, clock: clk},
		logger: logger.Named("comments"),
	}
}

// ListComments lists the comments of one of the caller's meetings
func (s *CommentServiceImpl) ListComments(ctx context.Context, userID, meetingID string) ([]model.Comment, error) {
	if _, err := ownedMeeting(ctx, s.store, userID, meetingID); err != nil {
		return nil, err
	}
	return s.list(ctx, meetingID)
}

// CreateComment adds the caller's comment
func (s *CommentServiceImpl) CreateComment(ctx context.Context, userID, userName, meetingID string, req *dto.CreateCommentRequest) (*model.Comment, error) {
	if _, err := ownedMeeting(ctx, s.store, userID, meetingID); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, meetingID, req.ParentID); err != nil {
		return nil, err
	}
	if userName == "" {
		userName = userID
	}
	c := &model.Comment{
		ID:          uuid.NewString(),
		MeetingID:   meetingID,
		UserID:      &userID,
		AuthorName:  userName,
		AuthorColor: colorOrDefault(req.AuthorColor),
		Content:     req.Content,
		Selection:   req.Selection.Model(),
		ParentID:    req.ParentID,
	}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, errors.FromStore(err, "comment")
	}
	return c, nil
}

// UpdateComment edits a comment; only its author may
func (s *CommentServiceImpl) UpdateComment(ctx context.Context, userID, commentID string, req *dto.UpdateCommentRequest) (*model.Comment, error) {
	c, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, errors.FromStore(err, "comment")
	}
	if !c.OwnedBy(userID) {
		return nil, errors.NewForbiddenError("Only the author can edit this comment")
	}
	updated, err := s.store.UpdateComment(ctx, commentID, req.Content)
	if err != nil {
		return nil, errors.FromStore(err, "comment")
	}
	return updated, nil
}

// DeleteComment removes a comment; its author or the meeting owner may
func (s *CommentServiceImpl) DeleteComment(ctx context.Context, userID, commentID string) error {
	c, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return errors.FromStore(err, "comment")
	}
	if !c.OwnedBy(userID) {
		m, err := s.store.GetMeeting(ctx, c.MeetingID)
		if err != nil {
			return errors.FromStore(err, "meeting")
		}
		if m.UserID != userID {
			return errors.NewForbiddenError("Only the author or the meeting owner can delete this comment")
		}
	}
	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return errors.FromStore(err, "comment")
	}
	return nil
}

// ListPublicComments lists comments visible through a share link
func (s *CommentServiceImpl) ListPublicComments(ctx context.Context, token string) ([]model.Comment, error) {
	_, m, err := s.shares.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, m.ID)
}

// CreatePublicComment adds an anonymous comment through a share link
func (s *CommentServiceImpl) CreatePublicComment(ctx context.Context, req *dto.PublicCommentRequest) (*model.Comment, error) {
	share, m, err := s.shares.resolve(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, m.ID, req.ParentID); err != nil {
		return nil, err
	}
	token := share.Token
	c := &model.Comment{
		ID:          uuid.NewString(),
		MeetingID:   m.ID,
		AuthorName:  req.AuthorName,
		AuthorColor: colorOrDefault(req.AuthorColor),
		Content:     req.Content,
		Selection:   req.Selection.Model(),
		ParentID:    req.ParentID,
		ShareToken:  &token,
	}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, errors.FromStore(err, "comment")
	}
	s.logger.Debug("Public comment created", zap.String("meeting_id", m.ID), zap.String("comment_id", c.ID))
	return c, nil
}

func (s *CommentServiceImpl) list(ctx context.Context, meetingID string) ([]model.Comment, error) {
	comments, err := s.store.ListComments(ctx, meetingID)
	if err != nil {
		return nil, errors.FromStore(err, "comments")
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

// checkParent requires a reply's parent to exist on the same meeting
func (s *CommentServiceImpl) checkParent(ctx context.Context, meetingID string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	parent, err := s.store.GetComment(ctx, *parentID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return errors.NewValidationError("Validation failed", map[string]string{"parent_id": "parent comment not found"})
		}
		return errors.FromStore(err, "comment")
	}
	if parent.MeetingID != meetingID {
		return errors.NewValidationError("Validation failed", map[string]string{"parent_id": "parent comment belongs to another meeting"})
	}
	return nil
}

func colorOrDefault(color string) string {
	if color == "" {
		return DefaultAuthorColor
	}
	return color
}
