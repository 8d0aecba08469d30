package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type ClientService interface {
	Create(ctx context.Context, userID int64, cc *transfer.ClientCreation) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.Client, error)
	ClientInfo(ctx context.Context, userID, clientID int64) (*models.Client, error)
	Update(ctx context.Context, userID, clientID int64, cu *transfer.ClientUpdate) error
	UploadLogo(ctx context.Context, userID, clientID int64, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, userID, clientID int64) error
}

type clientService struct {
	c  repository.ClientRepository
	sb repository.SubscriptionRepository
	r2 R2Service
}

func NewClientService(c repository.ClientRepository, sb repository.SubscriptionRepository, r2 R2Service) ClientService {
	return &clientService{
		c:  c,
		sb: sb,
		r2: r2,
	}
}

// Create checks the caller's tier ceiling before inserting, and mints the
// portal token that gives the client unauthenticated portal access.
func (s *clientService) Create(ctx context.Context, userID int64, cc *transfer.ClientCreation) (int64, error) {
	if cc.Name == "" {
		err := errors.New("client name cannot be empty")
		slog.Info(err.Error())
		return 0, err
	}

	sub, isExist, err := s.sb.GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error checking subscription: %w", err)
	}

	tier := models.TierFreemium
	if isExist {
		tier = sub.Tier
	}

	limits := models.LimitsForTier(tier)
	if limits.MaxClients >= 0 {
		count, err := s.c.CountByUserID(ctx, userID)
		if err != nil {
			return 0, fmt.Errorf("error counting clients: %w", err)
		}
		if count >= limits.MaxClients {
			slog.Info("client limit reached", "user_id", userID)
			return 0, ErrLimitReached
		}
	}

	portalToken, err := gonanoid.New(24)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	client := &models.Client{
		UserID:      userID,
		Name:        cc.Name,
		Description: cc.Description,
		Website:     cc.Website,
		BrandColor:  cc.BrandColor,
		PortalToken: portalToken,
	}

	id, err := s.c.Create(ctx, client)
	if err != nil {
		return 0, fmt.Errorf("error creating client: %w", err)
	}
	return id, nil
}

func (s *clientService) List(ctx context.Context, userID int64) ([]*models.Client, error) {
	clients, err := s.c.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}
	return clients, nil
}

// ClientInfo resolves the client and enforces ownership: unknown id is
// ErrNotFound, someone else's client is ErrForbidden.
func (s *clientService) ClientInfo(ctx context.Context, userID, clientID int64) (*models.Client, error) {
	client, isExist, err := s.c.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("error getting client: %w", err)
	}
	if !isExist {
		return nil, ErrNotFound
	}
	if client.UserID != userID {
		return nil, ErrForbidden
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, userID, clientID int64, cu *transfer.ClientUpdate) error {
	client, err := s.ClientInfo(ctx, userID, clientID)
	if err != nil {
		return err
	}

	if cu.Name != nil {
		client.Name = *cu.Name
	}
	if cu.Description != nil {
		client.Description = *cu.Description
	}
	if cu.Website != nil {
		client.Website = *cu.Website
	}
	if cu.BrandColor != nil {
		client.BrandColor = *cu.BrandColor
	}
	if cu.LateProfileID != nil {
		client.LateProfileID = *cu.LateProfileID
	}

	if err := s.c.Update(ctx, client); err != nil {
		return fmt.Errorf("error updating client: %w", err)
	}
	return nil
}

func (s *clientService) UploadLogo(ctx context.Context, userID, clientID int64, file *multipart.FileHeader) (string, error) {
	if _, err := s.ClientInfo(ctx, userID, clientID); err != nil {
		return "", err
	}

	fileContent, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", errors.New("unsupported file type")
	}
	if fileType.Extension != "png" && fileType.Extension != "jpg" && fileType.Extension != "jpeg" {
		return "", fmt.Errorf("file type %s is not allowed for logos", fileType.Extension)
	}

	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	logoURL, err := s.r2.Upload(ctx, key, fileBytes, fileType.MIME.Value)
	if err != nil {
		return "", fmt.Errorf("error uploading logo: %w", err)
	}

	if err := s.c.SetLogoURL(ctx, clientID, logoURL); err != nil {
		return "", fmt.Errorf("error saving logo url: %w", err)
	}
	return logoURL, nil
}

func (s *clientService) Remove(ctx context.Context, userID, clientID int64) error {
	if _, err := s.ClientInfo(ctx, userID, clientID); err != nil {
		return err
	}

	if err := s.c.Remove(ctx, clientID); err != nil {
		return fmt.Errorf("error removing client: %w", err)
	}
	return nil
}
