package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
	"github.com/cambrewitt-ship-it/contentflow/pkg/utils"
)

const sessionDuration = 7 * 24 * time.Hour

type ApprovalService interface {
	CreateSession(ctx context.Context, userID, clientID int64) (*models.ApprovalSession, error)
	PortalPosts(ctx context.Context, token string) ([]*models.Post, error)
	Decide(ctx context.Context, token string, postID int64, decision *transfer.ApprovalDecision) error
	ApprovalsForPost(ctx context.Context, userID, postID int64) ([]*models.PostApproval, error)
}

type approvalService struct {
	db *sql.DB
	a  repository.ApprovalRepository
	pr repository.PostRepository
	c  repository.ClientRepository
	ac repository.ActivityRepository
}

func NewApprovalService(
	db *sql.DB,
	a repository.ApprovalRepository,
	pr repository.PostRepository,
	c repository.ClientRepository,
	ac repository.ActivityRepository) ApprovalService {
	return &approvalService{
		db: db,
		a:  a,
		pr: pr,
		c:  c,
		ac: ac,
	}
}

func (s *approvalService) CreateSession(ctx context.Context, userID, clientID int64) (*models.ApprovalSession, error) {
	owned, err := s.c.CheckByUserID(ctx, clientID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		_, isExist, err := s.c.GetByID(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if !isExist {
			return nil, ErrNotFound
		}
		return nil, ErrForbidden
	}

	token, err := utils.GenerateRandomKey(24)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	session := &models.ApprovalSession{
		ClientID:  clientID,
		Token:     token,
		ExpiresAt: time.Now().Add(sessionDuration),
	}

	id, err := s.a.CreateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("error creating approval session: %w", err)
	}
	session.ID = id
	return session, nil
}

// resolveSession rejects unknown tokens with ErrNotFound and past-expiry
// sessions with ErrSessionExpired (410 at the route layer).
func (s *approvalService) resolveSession(ctx context.Context, token string) (*models.ApprovalSession, error) {
	session, isExist, err := s.a.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error resolving session: %w", err)
	}
	if !isExist {
		return nil, ErrNotFound
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// PortalPosts returns the client's pending posts and records the portal
// visit for unread-count purposes.
func (s *approvalService) PortalPosts(ctx context.Context, token string) ([]*models.Post, error) {
	session, err := s.resolveSession(ctx, token)
	if err != nil {
		return nil, err
	}

	if _, err := s.ac.Create(ctx, nil, &models.ClientActivity{
		ClientID:     session.ClientID,
		ActivityType: models.ActivityTypePortalVisit,
	}); err != nil {
		slog.Info(err.Error())
	}

	posts, err := s.pr.ListPendingByClientID(ctx, session.ClientID)
	if err != nil {
		return nil, fmt.Errorf("error listing pending posts: %w", err)
	}
	return posts, nil
}

// Decide applies a client decision to a post. The status flip, the decision
// upsert, the optional caption overwrite with its revision record, and the
// activity row all commit together.
func (s *approvalService) Decide(ctx context.Context, token string, postID int64, decision *transfer.ApprovalDecision) (err error) {
	switch decision.Decision {
	case models.ApprovalStatusApproved, models.ApprovalStatusRejected, models.ApprovalStatusNeedsAttention:
	default:
		return fmt.Errorf("invalid decision %q", decision.Decision)
	}

	session, err := s.resolveSession(ctx, token)
	if err != nil {
		return err
	}

	post, isExist, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("error getting post: %w", err)
	}
	if !isExist {
		return ErrNotFound
	}
	if post.ClientID != session.ClientID {
		return ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	if err = s.pr.UpdateApprovalStatus(ctx, tx, postID, decision.Decision); err != nil {
		return fmt.Errorf("error updating approval status: %w", err)
	}

	approval := &models.PostApproval{
		SessionID: session.ID,
		PostID:    postID,
		Decision:  decision.Decision,
	}
	if decision.Comments != "" {
		approval.Comments = sql.NullString{String: decision.Comments, Valid: true}
	}
	if err = s.a.UpsertApproval(ctx, tx, approval); err != nil {
		return fmt.Errorf("error saving approval: %w", err)
	}

	if decision.EditedCaption != "" && decision.EditedCaption != post.Caption {
		if _, err = s.a.CreateRevision(ctx, tx, postID, post.Caption, "client"); err != nil {
			return fmt.Errorf("error recording caption revision: %w", err)
		}
		if err = s.pr.UpdateCaption(ctx, tx, postID, decision.EditedCaption); err != nil {
			return fmt.Errorf("error updating caption: %w", err)
		}
	}

	if _, err = s.ac.Create(ctx, tx, &models.ClientActivity{
		ClientID:     session.ClientID,
		ActivityType: models.ActivityTypeApproval,
	}); err != nil {
		return fmt.Errorf("error recording activity: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ApprovalsForPost is agency-side: the decision history clients left on one
// of the caller's posts.
func (s *approvalService) ApprovalsForPost(ctx context.Context, userID, postID int64) ([]*models.PostApproval, error) {
	_, isExist, err := s.pr.GetByID(ctx, postID)
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

	approvals, err := s.a.ListApprovalsByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing approvals: %w", err)
	}
	return approvals, nil
}
