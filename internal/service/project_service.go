package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
)

type ProjectService interface {
	Create(ctx context.Context, userID int64, pc *transfer.ProjectCreation) (int64, error)
	List(ctx context.Context, userID, clientID int64) ([]*models.Project, error)
	ProjectInfo(ctx context.Context, userID, projectID int64) (*models.Project, error)
	Update(ctx context.Context, userID, projectID int64, pu *transfer.ProjectUpdate) error
	Remove(ctx context.Context, userID, projectID int64) error
}

type projectService struct {
	p repository.ProjectRepository
	c repository.ClientRepository
}

func NewProjectService(p repository.ProjectRepository, c repository.ClientRepository) ProjectService {
	return &projectService{
		p: p,
		c: c,
	}
}

func (s *projectService) Create(ctx context.Context, userID int64, pc *transfer.ProjectCreation) (int64, error) {
	if pc.Name == "" {
		err := errors.New("project name cannot be empty")
		slog.Info(err.Error())
		return 0, err
	}

	if err := s.checkClient(ctx, userID, pc.ClientID); err != nil {
		return 0, err
	}

	project := &models.Project{
		ClientID:    pc.ClientID,
		Name:        pc.Name,
		Description: pc.Description,
		Status:      models.ProjectStatusActive,
	}

	id, err := s.p.Create(ctx, project)
	if err != nil {
		return 0, fmt.Errorf("error creating project: %w", err)
	}
	return id, nil
}

func (s *projectService) List(ctx context.Context, userID, clientID int64) ([]*models.Project, error) {
	if err := s.checkClient(ctx, userID, clientID); err != nil {
		return nil, err
	}

	projects, err := s.p.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) ProjectInfo(ctx context.Context, userID, projectID int64) (*models.Project, error) {
	project, isExist, err := s.p.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error getting project: %w", err)
	}
	if !isExist {
		return nil, ErrNotFound
	}

	if err := s.checkClient(ctx, userID, project.ClientID); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, userID, projectID int64, pu *transfer.ProjectUpdate) error {
	project, err := s.ProjectInfo(ctx, userID, projectID)
	if err != nil {
		return err
	}

	if pu.Name != nil {
		project.Name = *pu.Name
	}
	if pu.Description != nil {
		project.Description = *pu.Description
	}
	if pu.Status != nil {
		if *pu.Status != models.ProjectStatusActive && *pu.Status != models.ProjectStatusArchived {
			return fmt.Errorf("invalid project status %q", *pu.Status)
		}
		project.Status = *pu.Status
	}

	if err := s.p.Update(ctx, project); err != nil {
		return fmt.Errorf("error updating project: %w", err)
	}
	return nil
}

func (s *projectService) Remove(ctx context.Context, userID, projectID int64) error {
	if _, err := s.ProjectInfo(ctx, userID, projectID); err != nil {
		return err
	}

	if err := s.p.Remove(ctx, projectID); err != nil {
		return fmt.Errorf("error removing project: %w", err)
	}
	return nil
}

func (s *projectService) checkClient(ctx context.Context, userID, clientID int64) error {
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
