package service

import (
	"context"
	"fmt"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
)

type ActivityService interface {
	UnreadCounts(ctx context.Context, userID int64) (map[int64]int, error)
	MarkViewed(ctx context.Context, userID, clientID int64) error
}

type activityService struct {
	ac repository.ActivityRepository
	c  repository.ClientRepository
}

func NewActivityService(ac repository.ActivityRepository, c repository.ClientRepository) ActivityService {
	return &activityService{
		ac: ac,
		c:  c,
	}
}

// UnreadCounts sums, per owned client, the uploads, approval-status changes
// and portal visits that happened after the caller last viewed the client.
// A client never viewed counts everything.
func (s *activityService) UnreadCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	clients, err := s.c.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}

	counts := make(map[int64]int, len(clients))
	for _, client := range clients {
		viewedAt, err := s.ac.GetViewedAt(ctx, userID, client.ID)
		if err != nil {
			return nil, fmt.Errorf("error reading watermark: %w", err)
		}

		uploads, err := s.ac.CountUploadsSince(ctx, client.ID, viewedAt)
		if err != nil {
			return nil, fmt.Errorf("error counting uploads: %w", err)
		}

		approvals, err := s.ac.CountApprovedPostsSince(ctx, client.ID, viewedAt)
		if err != nil {
			return nil, fmt.Errorf("error counting approvals: %w", err)
		}

		visits, err := s.ac.CountActivitySince(ctx, client.ID, models.ActivityTypePortalVisit, viewedAt)
		if err != nil {
			return nil, fmt.Errorf("error counting portal visits: %w", err)
		}

		counts[client.ID] = uploads + approvals + visits
	}
	return counts, nil
}

func (s *activityService) MarkViewed(ctx context.Context, userID, clientID int64) error {
	_, isExist, err := s.c.GetByID(ctx, clientID)
	if err != nil {
		return fmt.Errorf("error getting client: %w", err)
	}
	if !isExist {
		return ErrNotFound
	}

	owned, err := s.c.CheckByUserID(ctx, clientID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrForbidden
	}

	return s.ac.MarkViewed(ctx, userID, clientID)
}
