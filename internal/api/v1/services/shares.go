package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/app/clock"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/repository"
)

// SharePath prefixes the public URL of a share link
const SharePath = "/shared/"

// ShareServiceImpl implements ShareService
type ShareServiceImpl struct {
	store         repository.Store
	shares        shareResolver
	publicBaseURL string
	clock         clock.Clock
	logger        *zap.Logger
}

// NewShareService creates a new share service
func NewShareService(store repository.Store, publicBaseURL string, clk clock.Clock, logger *zap.Logger) ShareService {
	return &ShareServiceImpl{
		store:         store,
		shares:        shareResolver{store: store, clock: clk},
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		clock:         clk,
		logger:        logger.Named("shares"),
	}
}

// NewShareToken returns 32 random hex characters
func NewShareToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateShare issues a share link for one of the caller's meetings
func (s *ShareServiceImpl) CreateShare(ctx context.Context, userID, meetingID string, req *dto.CreateShareRequest) (*dto.ShareResponse, error) {
	if _, err := ownedMeeting(ctx, s.store, userID, meetingID); err != nil {
		return nil, err
	}
	share := &model.Share{
		Token:     NewShareToken(),
		MeetingID: meetingID,
		UserID:    userID,
	}
	if req != nil && req.ExpiresInHours != nil {
		expires := s.clock.Now().UTC().Add(time.Duration(*req.ExpiresInHours) * time.Hour)
		share.ExpiresAt = &expires
	}
	if err := s.store.CreateShare(ctx, share); err != nil {
		return nil, errors.FromStore(err, "share")
	}
	s.logger.Info("Share link created", zap.String("meeting_id", meetingID), zap.Bool("expires", share.ExpiresAt != nil))
	resp := s.response(*share)
	return &resp, nil
}

// ListShares lists the share links of one of the caller's meetings
func (s *ShareServiceImpl) ListShares(ctx context.Context, userID, meetingID string) ([]dto.ShareResponse, error) {
	if _, err := ownedMeeting(ctx, s.store, userID, meetingID); err != nil {
		return nil, err
	}
	shares, err := s.store.ListShares(ctx, meetingID)
	if err != nil {
		return nil, errors.FromStore(err, "shares")
	}
	return lo.Map(shares, func(sh model.Share, _ int) dto.ShareResponse { return s.response(sh) }), nil
}

// GetSharedMeeting returns the read-only view of a shared meeting
func (s *ShareServiceImpl) GetSharedMeeting(ctx context.Context, token string) (*dto.SharedMeetingResponse, error) {
	share, m, err := s.shares.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return dto.NewSharedMeetingResponse(m, share), nil
}

// DeleteShare revokes a share link; only its creator may
func (s *ShareServiceImpl) DeleteShare(ctx context.Context, userID, token string) error {
	share, err := s.store.GetShare(ctx, token)
	if err != nil {
		return errors.FromStore(err, "share")
	}
	if share.UserID != userID {
		return errors.NewForbiddenError("Only the creator can revoke this share link")
	}
	if err := s.store.DeleteShare(ctx, token); err != nil {
		return errors.FromStore(err, "share")
	}
	return nil
}

func (s *ShareServiceImpl) response(share model.Share) dto.ShareResponse {
	return dto.ShareResponse{Share: share, URL: s.publicBaseURL + SharePath + share.Token}
}
