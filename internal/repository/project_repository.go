package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Project, bool, error)
	ListByClientID(ctx context.Context, clientID int64) ([]*models.Project, error)
	CheckByUserID(ctx context.Context, projectID, userID int64) (bool, error)
	Create(ctx context.Context, project *models.Project) (int64, error)
	Update(ctx context.Context, project *models.Project) error
	Remove(ctx context.Context, id int64) error
}

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*models.Project, bool, error) {
	var p models.Project
	query := "SELECT id, client_id, name, description, status, created_at, updated_at FROM projects WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.ClientID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &p, true, nil
}

func (r *projectRepository) ListByClientID(ctx context.Context, clientID int64) ([]*models.Project, error) {
	query := `
		SELECT id, client_id, name, description, status, created_at, updated_at
		FROM projects
		WHERE client_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var p models.Project
		err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// Ownership is transitive through the project's client.
func (r *projectRepository) CheckByUserID(ctx context.Context, projectID, userID int64) (bool, error) {
	query := `
		SELECT 1 FROM projects p
		JOIN clients c ON c.id = p.client_id
		WHERE p.id = $1 AND c.user_id = $2
	`
	var result int
	err := r.db.QueryRowContext(ctx, query, projectID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) (int64, error) {
	query := `
		INSERT INTO projects (client_id, name, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, project.ClientID, project.Name, project.Description, project.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET name = $1,
			description = $2,
			status = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, project.Name, project.Description, project.Status, time.Now(), project.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *projectRepository) Remove(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
