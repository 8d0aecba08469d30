package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
)

type ActivityRepository interface {
	Create(ctx context.Context, tx *sql.Tx, activity *models.ClientActivity) (int64, error)
	GetViewedAt(ctx context.Context, userID, clientID int64) (time.Time, error)
	MarkViewed(ctx context.Context, userID, clientID int64) error
	CountUploadsSince(ctx context.Context, clientID int64, since time.Time) (int, error)
	CountApprovedPostsSince(ctx context.Context, clientID int64, since time.Time) (int, error)
	CountActivitySince(ctx context.Context, clientID int64, activityType string, since time.Time) (int, error)
}

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, tx *sql.Tx, activity *models.ClientActivity) (int64, error) {
	query := `
		INSERT INTO client_activity (client_id, activity_type, metadata)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, activity.ClientID, activity.ActivityType, activity.Metadata).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, activity.ClientID, activity.ActivityType, activity.Metadata).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

// GetViewedAt returns the zero time when the user has never viewed the
// client, so everything counts as unread.
func (r *activityRepository) GetViewedAt(ctx context.Context, userID, clientID int64) (time.Time, error) {
	var viewedAt time.Time
	query := "SELECT viewed_at FROM client_activity_views WHERE user_id = $1 AND client_id = $2"
	err := r.db.QueryRowContext(ctx, query, userID, clientID).Scan(&viewedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, nil
		}
		slog.Info(err.Error())
		return time.Time{}, err
	}
	return viewedAt, nil
}

func (r *activityRepository) MarkViewed(ctx context.Context, userID, clientID int64) error {
	query := `
		INSERT INTO client_activity_views (user_id, client_id, viewed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, client_id)
		DO UPDATE SET viewed_at = EXCLUDED.viewed_at
	`
	_, err := r.db.ExecContext(ctx, query, userID, clientID, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *activityRepository) CountUploadsSince(ctx context.Context, clientID int64, since time.Time) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM client_uploads WHERE client_id = $1 AND created_at > $2"
	err := r.db.QueryRowContext(ctx, query, clientID, since).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func (r *activityRepository) CountApprovedPostsSince(ctx context.Context, clientID int64, since time.Time) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM posts WHERE client_id = $1 AND approval_status = $2 AND updated_at > $3"
	err := r.db.QueryRowContext(ctx, query, clientID, models.ApprovalStatusApproved, since).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func (r *activityRepository) CountActivitySince(ctx context.Context, clientID int64, activityType string, since time.Time) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM client_activity WHERE client_id = $1 AND activity_type = $2 AND created_at > $3"
	err := r.db.QueryRowContext(ctx, query, clientID, activityType, since).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}
