package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

type PostService interface {
	Create(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, error)
	List(ctx context.Context, userID, clientID int64, state string, limit, offset int) ([]*models.Post, error)
	PostInfo(ctx context.Context, userID, postID int64) (*models.Post, error)
	Schedule(ctx context.Context, userID, postID int64, ps *transfer.PostSchedule) error
	Update(ctx context.Context, userID, postID int64, pu *transfer.PostUpdate) error
	Remove(ctx context.Context, userID, postID int64) error
	AddRevision(ctx context.Context, userID, postID int64, rc *transfer.RevisionCreation) (int, error)
	ListRevisions(ctx context.Context, userID, postID int64) ([]*models.PostRevision, error)
	PublishHistory(ctx context.Context, userID, postID int64) ([]*models.PublishHistory, error)
}

type postService struct {
	pr   repository.PostRepository
	c    repository.ClientRepository
	a    repository.ApprovalRepository
	sb   repository.SubscriptionRepository
	ph   repository.PublishHistoryRepository
	late LateService
}

func NewPostService(
	pr repository.PostRepository,
	c repository.ClientRepository,
	a repository.ApprovalRepository,
	sb repository.SubscriptionRepository,
	ph repository.PublishHistoryRepository,
	late LateService) PostService {
	return &postService{
		pr:   pr,
		c:    c,
		a:    a,
		sb:   sb,
		ph:   ph,
		late: late,
	}
}

// ClampPageSize bounds list query cost. Invalid values fall back to the
// default rather than erroring.
func ClampPageSize(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

func (s *postService) Create(ctx context.Context, userID int64, pc *transfer.PostCreation) (*models.Post, error) {
	if pc.Caption == "" {
		err := errors.New("caption cannot be empty")
		slog.Info(err.Error())
		return nil, err
	}

	if err := s.checkClient(ctx, userID, pc.ClientID); err != nil {
		return nil, err
	}

	if err := s.checkPostQuota(ctx, userID); err != nil {
		return nil, err
	}

	post := &models.Post{
		ClientID:       pc.ClientID,
		Caption:        pc.Caption,
		ApprovalStatus: models.ApprovalStatusPending,
		State:          models.PostStateUnscheduled,
	}
	if pc.ProjectID != nil {
		post.ProjectID = sql.NullInt64{Int64: *pc.ProjectID, Valid: true}
	}
	if pc.ImageURL != nil {
		post.ImageURL = sql.NullString{String: *pc.ImageURL, Valid: true}
	}

	id, err := s.pr.Create(ctx, nil, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	created, isExist, err := s.pr.GetByID(ctx, id)
	if err != nil || !isExist {
		return nil, fmt.Errorf("error reading created post: %w", err)
	}
	return created, nil
}

func (s *postService) List(ctx context.Context, userID, clientID int64, state string, limit, offset int) ([]*models.Post, error) {
	if state != models.PostStateScheduled && state != models.PostStateUnscheduled {
		state = models.PostStateUnscheduled
	}
	if offset < 0 {
		offset = 0
	}

	if err := s.checkClient(ctx, userID, clientID); err != nil {
		return nil, err
	}

	posts, err := s.pr.ListByClientID(ctx, clientID, state, ClampPageSize(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

func (s *postService) PostInfo(ctx context.Context, userID, postID int64) (*models.Post, error) {
	post, isExist, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	if !isExist {
		return nil, ErrNotFound
	}

	owned, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrForbidden
	}
	return post, nil
}

// Schedule moves a post into the calendar. The state flip happens in a
// single guarded UPDATE, so a post is always in exactly one state.
func (s *postService) Schedule(ctx context.Context, userID, postID int64, ps *transfer.PostSchedule) error {
	if _, err := time.Parse("2006-01-02", ps.ScheduledDate); err != nil {
		return fmt.Errorf("invalid scheduled date: %w", err)
	}
	if _, err := time.Parse("15:04", ps.ScheduledTime); err != nil {
		return fmt.Errorf("invalid scheduled time: %w", err)
	}

	if _, err := s.PostInfo(ctx, userID, postID); err != nil {
		return err
	}

	moved, err := s.pr.Schedule(ctx, postID, ps.ScheduledDate, ps.ScheduledTime)
	if err != nil {
		return fmt.Errorf("error scheduling post: %w", err)
	}
	if !moved {
		slog.Info("post already scheduled", "post_id", postID)
		return ErrConflict
	}
	return nil
}

func (s *postService) Update(ctx context.Context, userID, postID int64, pu *transfer.PostUpdate) error {
	post, err := s.PostInfo(ctx, userID, postID)
	if err != nil {
		return err
	}

	if pu.Caption != nil {
		post.Caption = *pu.Caption
	}
	if pu.ImageURL != nil {
		post.ImageURL = sql.NullString{String: *pu.ImageURL, Valid: *pu.ImageURL != ""}
	}
	if pu.ScheduledDate != nil {
		if _, err := time.Parse("2006-01-02", *pu.ScheduledDate); err != nil {
			return fmt.Errorf("invalid scheduled date: %w", err)
		}
		post.ScheduledDate = sql.NullString{String: *pu.ScheduledDate, Valid: true}
	}
	if pu.ScheduledTime != nil {
		if _, err := time.Parse("15:04", *pu.ScheduledTime); err != nil {
			return fmt.Errorf("invalid scheduled time: %w", err)
		}
		post.ScheduledTime = sql.NullString{String: *pu.ScheduledTime, Valid: true}
	}

	if err := s.pr.Update(ctx, post); err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}
	return nil
}

// Remove deletes a post. A post already pushed to the external scheduler is
// withdrawn there first, otherwise it would still publish after the local
// row is gone.
func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	post, err := s.PostInfo(ctx, userID, postID)
	if err != nil {
		return err
	}

	if post.LatePostID.Valid {
		if err := s.late.DeletePost(ctx, post.LatePostID.String); err != nil {
			return fmt.Errorf("error withdrawing scheduled post: %w", err)
		}
	}

	if err := s.pr.Remove(ctx, postID); err != nil {
		return fmt.Errorf("error removing post: %w", err)
	}
	return nil
}

func (s *postService) AddRevision(ctx context.Context, userID, postID int64, rc *transfer.RevisionCreation) (int, error) {
	if rc.Caption == "" {
		err := errors.New("revision caption cannot be empty")
		slog.Info(err.Error())
		return 0, err
	}

	if _, err := s.PostInfo(ctx, userID, postID); err != nil {
		return 0, err
	}

	number, err := s.a.CreateRevision(ctx, nil, postID, rc.Caption, rc.EditedBy)
	if err != nil {
		return 0, fmt.Errorf("error creating revision: %w", err)
	}
	return number, nil
}

func (s *postService) ListRevisions(ctx context.Context, userID, postID int64) ([]*models.PostRevision, error) {
	if _, err := s.PostInfo(ctx, userID, postID); err != nil {
		return nil, err
	}

	revisions, err := s.a.ListRevisionsByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing revisions: %w", err)
	}
	return revisions, nil
}

// PublishHistory lists the scheduler push attempts for a post, failed ones
// included, newest first.
func (s *postService) PublishHistory(ctx context.Context, userID, postID int64) ([]*models.PublishHistory, error) {
	if _, err := s.PostInfo(ctx, userID, postID); err != nil {
		return nil, err
	}

	history, err := s.ph.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing publish history: %w", err)
	}
	return history, nil
}

func (s *postService) checkClient(ctx context.Context, userID, clientID int64) error {
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
	return nil
}

// Posts count against the calendar month, not the billing period.
func (s *postService) checkPostQuota(ctx context.Context, userID int64) error {
	sub, isExist, err := s.sb.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("error checking subscription: %w", err)
	}

	tier := models.TierFreemium
	if isExist {
		tier = sub.Tier
	}

	limits := models.LimitsForTier(tier)
	if limits.MaxPostsPerMonth < 0 {
		return nil
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	count, err := s.pr.CountByUserIDSince(ctx, userID, monthStart)
	if err != nil {
		return fmt.Errorf("error counting posts: %w", err)
	}
	if count >= limits.MaxPostsPerMonth {
		slog.Info("monthly post limit reached", "user_id", userID)
		return ErrLimitReached
	}
	return nil
}
