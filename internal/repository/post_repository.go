package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/lib/pq"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, bool, error)
	ListByClientID(ctx context.Context, clientID int64, state string, limit, offset int) ([]*models.Post, error)
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	CountByUserIDSince(ctx context.Context, userID int64, since time.Time) (int, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	Schedule(ctx context.Context, postID int64, date, timeOfDay string) (bool, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateApprovalStatus(ctx context.Context, tx *sql.Tx, postID int64, status string) error
	UpdateCaption(ctx context.Context, tx *sql.Tx, postID int64, caption string) error
	UpdateLateInfo(ctx context.Context, postID int64, latePostID, lateStatus string, platforms []string) error
	ListPendingByClientID(ctx context.Context, clientID int64) ([]*models.Post, error)
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, client_id, project_id, caption, image_url, approval_status, state,
	scheduled_date, scheduled_time, late_post_id, late_status, platforms_scheduled, created_at, updated_at`

func scanPost(scan func(dest ...any) error) (*models.Post, error) {
	var p models.Post
	err := scan(&p.ID, &p.ClientID, &p.ProjectID, &p.Caption, &p.ImageURL, &p.ApprovalStatus,
		&p.State, &p.ScheduledDate, &p.ScheduledTime, &p.LatePostID, &p.LateStatus,
		pq.Array(&p.PlatformsScheduled), &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, bool, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE id = $1"
	row := r.db.QueryRowContext(ctx, query, id)
	post, err := scanPost(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return post, true, nil
}

// ListByClientID returns scheduled posts in calendar order and unscheduled
// posts newest first.
func (r *postRepository) ListByClientID(ctx context.Context, clientID int64, state string, limit, offset int) ([]*models.Post, error) {
	order := "created_at DESC"
	if state == models.PostStateScheduled {
		order = "scheduled_date ASC, scheduled_time ASC"
	}
	query := "SELECT " + postColumns + " FROM posts WHERE client_id = $1 AND state = $2 ORDER BY " + order + " LIMIT $3 OFFSET $4"

	rows, err := r.db.QueryContext(ctx, query, clientID, state, limit, offset)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) ListPendingByClientID(ctx context.Context, clientID int64) ([]*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE client_id = $1 AND approval_status = $2 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, clientID, models.ApprovalStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := `
		SELECT 1 FROM posts p
		JOIN clients c ON c.id = p.client_id
		WHERE p.id = $1 AND c.user_id = $2
	`
	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *postRepository) CountByUserIDSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM posts p
		JOIN clients c ON c.id = p.client_id
		WHERE c.user_id = $1 AND p.created_at >= $2
	`
	var count int
	err := r.db.QueryRowContext(ctx, query, userID, since).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (client_id, project_id, caption, image_url, approval_status, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, post.ClientID, post.ProjectID, post.Caption, post.ImageURL, post.ApprovalStatus, post.State).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, post.ClientID, post.ProjectID, post.Caption, post.ImageURL, post.ApprovalStatus, post.State).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

// Schedule flips a post from unscheduled to scheduled in a single guarded
// UPDATE, so the post can never exist in both states or neither. Returns
// false when the post was not in the unscheduled state.
func (r *postRepository) Schedule(ctx context.Context, postID int64, date, timeOfDay string) (bool, error) {
	query := `
		UPDATE posts
		SET state = $1,
			scheduled_date = $2,
			scheduled_time = $3,
			updated_at = $4
		WHERE id = $5 AND state = $6
	`
	res, err := r.db.ExecContext(ctx, query, models.PostStateScheduled, date, timeOfDay, time.Now(), postID, models.PostStateUnscheduled)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET caption = $1,
			image_url = $2,
			scheduled_date = $3,
			scheduled_time = $4,
			updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query, post.Caption, post.ImageURL, post.ScheduledDate, post.ScheduledTime, time.Now(), post.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateApprovalStatus(ctx context.Context, tx *sql.Tx, postID int64, status string) error {
	query := "UPDATE posts SET approval_status = $1, updated_at = $2 WHERE id = $3"

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, status, time.Now(), postID)
	} else {
		_, err = r.db.ExecContext(ctx, query, status, time.Now(), postID)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateCaption(ctx context.Context, tx *sql.Tx, postID int64, caption string) error {
	query := "UPDATE posts SET caption = $1, updated_at = $2 WHERE id = $3"

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, caption, time.Now(), postID)
	} else {
		_, err = r.db.ExecContext(ctx, query, caption, time.Now(), postID)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateLateInfo(ctx context.Context, postID int64, latePostID, lateStatus string, platforms []string) error {
	query := `
		UPDATE posts
		SET late_post_id = $1,
			late_status = $2,
			platforms_scheduled = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, latePostID, lateStatus, pq.Array(platforms), time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
