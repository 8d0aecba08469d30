package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
)

type UploadRepository interface {
	GetByID(ctx context.Context, id int64) (*models.ClientUpload, bool, error)
	ListByClientID(ctx context.Context, clientID int64) ([]*models.ClientUpload, error)
	Create(ctx context.Context, tx *sql.Tx, upload *models.ClientUpload) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status, notes string) error
}

type uploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) GetByID(ctx context.Context, id int64) (*models.ClientUpload, bool, error) {
	var u models.ClientUpload
	query := `
		SELECT id, client_id, file_name, file_type, file_size, file_url, status, notes, created_at
		FROM client_uploads WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.ClientID, &u.FileName, &u.FileType,
		&u.FileSize, &u.FileURL, &u.Status, &u.Notes, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &u, true, nil
}

func (r *uploadRepository) ListByClientID(ctx context.Context, clientID int64) ([]*models.ClientUpload, error) {
	query := `
		SELECT id, client_id, file_name, file_type, file_size, file_url, status, notes, created_at
		FROM client_uploads
		WHERE client_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var uploads []*models.ClientUpload
	for rows.Next() {
		var u models.ClientUpload
		err := rows.Scan(&u.ID, &u.ClientID, &u.FileName, &u.FileType, &u.FileSize, &u.FileURL, &u.Status, &u.Notes, &u.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		uploads = append(uploads, &u)
	}
	return uploads, rows.Err()
}

func (r *uploadRepository) Create(ctx context.Context, tx *sql.Tx, upload *models.ClientUpload) (int64, error) {
	query := `
		INSERT INTO client_uploads (client_id, file_name, file_type, file_size, file_url, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, upload.ClientID, upload.FileName, upload.FileType,
			upload.FileSize, upload.FileURL, upload.Status, upload.Notes).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, upload.ClientID, upload.FileName, upload.FileType,
			upload.FileSize, upload.FileURL, upload.Status, upload.Notes).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *uploadRepository) UpdateStatus(ctx context.Context, id int64, status, notes string) error {
	query := "UPDATE client_uploads SET status = $1, notes = $2 WHERE id = $3"
	_, err := r.db.ExecContext(ctx, query, status, notes, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
