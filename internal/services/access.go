package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	types "github.com/yungbote/eventjudge-backend/internal/domain"
	apperrors "github.com/yungbote/eventjudge-backend/internal/pkg/errors"
	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
	"github.com/yungbote/eventjudge-backend/internal/requestdata"
)

// AccessService answers role questions for the statistics endpoints. Staff
// users pass every check.
type AccessService interface {
	RequireReferee(ctx context.Context, eventID uuid.UUID) (*types.EventParticipant, error)
	RequireRefereeForOnlineSession(ctx context.Context, sessionID uuid.UUID) (*types.EventParticipant, error)
	RequireRefereeForOfflineSession(ctx context.Context, sessionID uuid.UUID) (*types.EventParticipant, error)
	RequireRefereeForProject(ctx context.Context, projectID uuid.UUID) (*types.EventParticipant, error)
	RequireOwnerOrStaff(ctx context.Context, eventID uuid.UUID) error
	RequireMember(ctx context.Context, eventID uuid.UUID) (*types.EventParticipant, error)
}

type accessService struct {
	db              *gorm.DB
	log             *logger.Logger
	eventRepo       repos.EventRepo
	participantRepo repos.EventParticipantRepo
	sessionRepo     repos.SessionRepo
	projectRepo     repos.ProjectWorkRepo
}

func NewAccessService(
	db *gorm.DB,
	log *logger.Logger,
	eventRepo repos.EventRepo,
	participantRepo repos.EventParticipantRepo,
	sessionRepo repos.SessionRepo,
	projectRepo repos.ProjectWorkRepo,
) AccessService {
	serviceLog := log.With("service", "AccessService")
	return &accessService{
		db:              db,
		log:             serviceLog,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		sessionRepo:     sessionRepo,
		projectRepo:     projectRepo,
	}
}

func (s *accessService) RequireReferee(ctx context.Context, eventID uuid.UUID) (*types.EventParticipant, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}

	row, err := s.participantRepo.GetByEventAndUser(ctx, nil, eventID, rd.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if rd.IsStaff {
				return nil, nil
			}
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("failed to load participant row: %w", err)
	}

	if row.Role != types.RoleReferee && row.Role != types.RoleOwner && !rd.IsStaff {
		return nil, apperrors.ErrForbidden
	}
	return row, nil
}

func (s *accessService) RequireRefereeForOnlineSession(ctx context.Context, sessionID uuid.UUID) (*types.EventParticipant, error) {
	session, err := s.sessionRepo.GetOnlineByID(ctx, nil, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load online session: %w", err)
	}
	return s.RequireReferee(ctx, session.EventID)
}

func (s *accessService) RequireRefereeForOfflineSession(ctx context.Context, sessionID uuid.UUID) (*types.EventParticipant, error) {
	session, err := s.sessionRepo.GetOfflineByID(ctx, nil, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load offline session: %w", err)
	}
	return s.RequireReferee(ctx, session.EventID)
}

func (s *accessService) RequireRefereeForProject(ctx context.Context, projectID uuid.UUID) (*types.EventParticipant, error) {
	project, err := s.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return s.RequireReferee(ctx, project.EventID)
}

func (s *accessService) RequireOwnerOrStaff(ctx context.Context, eventID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apperrors.ErrUnauthorized
	}
	if rd.IsStaff {
		return nil
	}

	event, err := s.eventRepo.GetByID(ctx, nil, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load event: %w", err)
	}
	if event.OwnerID != rd.UserID {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *accessService) RequireMember(ctx context.Context, eventID uuid.UUID) (*types.EventParticipant, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}

	row, err := s.participantRepo.GetByEventAndUser(ctx, nil, eventID, rd.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if rd.IsStaff {
				return nil, nil
			}
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("failed to load participant row: %w", err)
	}
	return row, nil
}
