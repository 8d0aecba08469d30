package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
)

type ApprovalRepository interface {
	CreateSession(ctx context.Context, session *models.ApprovalSession) (int64, error)
	GetSessionByToken(ctx context.Context, token string) (*models.ApprovalSession, bool, error)
	UpsertApproval(ctx context.Context, tx *sql.Tx, approval *models.PostApproval) error
	ListApprovalsByPostID(ctx context.Context, postID int64) ([]*models.PostApproval, error)
	CreateRevision(ctx context.Context, tx *sql.Tx, postID int64, caption, editedBy string) (int, error)
	ListRevisionsByPostID(ctx context.Context, postID int64) ([]*models.PostRevision, error)
}

type approvalRepository struct {
	db *sql.DB
}

func NewApprovalRepository(db *sql.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) CreateSession(ctx context.Context, session *models.ApprovalSession) (int64, error) {
	query := `
		INSERT INTO approval_sessions (client_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, session.ClientID, session.Token, session.ExpiresAt).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *approvalRepository) GetSessionByToken(ctx context.Context, token string) (*models.ApprovalSession, bool, error) {
	var s models.ApprovalSession
	query := "SELECT id, client_id, token, expires_at, created_at FROM approval_sessions WHERE token = $1"
	err := r.db.QueryRowContext(ctx, query, token).Scan(&s.ID, &s.ClientID, &s.Token, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &s, true, nil
}

// One decision row per (session, post); a repeated decision overwrites the
// previous one.
func (r *approvalRepository) UpsertApproval(ctx context.Context, tx *sql.Tx, approval *models.PostApproval) error {
	query := `
		INSERT INTO post_approvals (session_id, post_id, decision, comments)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, post_id)
		DO UPDATE SET decision = EXCLUDED.decision, comments = EXCLUDED.comments, updated_at = $5
	`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, approval.SessionID, approval.PostID, approval.Decision, approval.Comments, time.Now())
	} else {
		_, err = r.db.ExecContext(ctx, query, approval.SessionID, approval.PostID, approval.Decision, approval.Comments, time.Now())
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *approvalRepository) ListApprovalsByPostID(ctx context.Context, postID int64) ([]*models.PostApproval, error) {
	query := `
		SELECT id, session_id, post_id, decision, comments, created_at, updated_at
		FROM post_approvals
		WHERE post_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var approvals []*models.PostApproval
	for rows.Next() {
		var a models.PostApproval
		err := rows.Scan(&a.ID, &a.SessionID, &a.PostID, &a.Decision, &a.Comments, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		approvals = append(approvals, &a)
	}
	return approvals, rows.Err()
}

// CreateRevision assigns the next revision number for the post. Callers that
// pair the revision with a caption overwrite should pass the surrounding
// transaction so the number cannot be claimed twice.
func (r *approvalRepository) CreateRevision(ctx context.Context, tx *sql.Tx, postID int64, caption, editedBy string) (int, error) {
	query := `
		INSERT INTO post_revisions (post_id, revision_number, caption, edited_by)
		SELECT $1, COALESCE(MAX(revision_number), 0) + 1, $2, $3
		FROM post_revisions WHERE post_id = $1
		RETURNING revision_number
	`

	var number int
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, postID, caption, editedBy).Scan(&number)
	} else {
		err = r.db.QueryRowContext(ctx, query, postID, caption, editedBy).Scan(&number)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return number, nil
}

func (r *approvalRepository) ListRevisionsByPostID(ctx context.Context, postID int64) ([]*models.PostRevision, error) {
	query := `
		SELECT id, post_id, revision_number, caption, edited_by, created_at
		FROM post_revisions
		WHERE post_id = $1
		ORDER BY revision_number ASC
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var revisions []*models.PostRevision
	for rows.Next() {
		var rev models.PostRevision
		err := rows.Scan(&rev.ID, &rev.PostID, &rev.RevisionNumber, &rev.Caption, &rev.EditedBy, &rev.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		revisions = append(revisions, &rev)
	}
	return revisions, rows.Err()
}
