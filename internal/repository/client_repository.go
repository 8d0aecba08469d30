package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
)

type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Client, bool, error)
	GetByPortalToken(ctx context.Context, token string) (*models.Client, bool, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Client, error)
	CountByUserID(ctx context.Context, userID int64) (int, error)
	CheckByUserID(ctx context.Context, clientID, userID int64) (bool, error)
	Create(ctx context.Context, client *models.Client) (int64, error)
	Update(ctx context.Context, client *models.Client) error
	SetLogoURL(ctx context.Context, id int64, logoURL string) error
	Remove(ctx context.Context, id int64) error
}

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = "id, user_id, name, description, website, logo_url, brand_color, late_profile_id, portal_token, created_at, updated_at"

func scanClient(row *sql.Row) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Website, &c.LogoURL,
		&c.BrandColor, &c.LateProfileID, &c.PortalToken, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*models.Client, bool, error) {
	query := "SELECT " + clientColumns + " FROM clients WHERE id = $1"
	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return client, true, nil
}

func (r *clientRepository) GetByPortalToken(ctx context.Context, token string) (*models.Client, bool, error) {
	query := "SELECT " + clientColumns + " FROM clients WHERE portal_token = $1"
	client, err := scanClient(r.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return client, true, nil
}

func (r *clientRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Client, error) {
	query := "SELECT " + clientColumns + " FROM clients WHERE user_id = $1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var c models.Client
		err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Website, &c.LogoURL,
			&c.BrandColor, &c.LateProfileID, &c.PortalToken, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		clients = append(clients, &c)
	}
	return clients, rows.Err()
}

func (r *clientRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients WHERE user_id = $1", userID).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func (r *clientRepository) CheckByUserID(ctx context.Context, clientID, userID int64) (bool, error) {
	query := "SELECT 1 FROM clients WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, clientID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) (int64, error) {
	query := `
		INSERT INTO clients (user_id, name, description, website, brand_color, late_profile_id, portal_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, client.UserID, client.Name, client.Description,
		client.Website, client.BrandColor, client.LateProfileID, client.PortalToken).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET name = $1,
			description = $2,
			website = $3,
			brand_color = $4,
			late_profile_id = $5,
			updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query, client.Name, client.Description, client.Website,
		client.BrandColor, client.LateProfileID, time.Now(), client.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *clientRepository) SetLogoURL(ctx context.Context, id int64, logoURL string) error {
	query := "UPDATE clients SET logo_url = $1, updated_at = $2 WHERE id = $3"
	_, err := r.db.ExecContext(ctx, query, logoURL, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *clientRepository) Remove(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
