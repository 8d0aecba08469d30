package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type UploadService interface {
	CreateFromPortal(ctx context.Context, portalToken string, file *multipart.FileHeader, notes string) (*models.ClientUpload, error)
	CreateFromAgency(ctx context.Context, userID, clientID int64, file *multipart.FileHeader, notes string) (*models.ClientUpload, error)
	List(ctx context.Context, userID, clientID int64) ([]*models.ClientUpload, error)
	MarkReviewed(ctx context.Context, userID, uploadID int64, notes string) error
}

type uploadService struct {
	db *sql.DB
	up repository.UploadRepository
	c  repository.ClientRepository
	a  repository.ApprovalRepository
	ac repository.ActivityRepository
	r2 R2Service
}

func NewUploadService(
	db *sql.DB,
	up repository.UploadRepository,
	c repository.ClientRepository,
	a repository.ApprovalRepository,
	ac repository.ActivityRepository,
	r2 R2Service) UploadService {
	return &uploadService{
		db: db,
		up: up,
		c:  c,
		a:  a,
		ac: ac,
		r2: r2,
	}
}

var allowedUploadTypes = map[string]struct{}{
	"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {}, "pdf": {},
}

// CreateFromPortal accepts a brand-content file from the unauthenticated
// client portal. The token may be an approval-session token or the client's
// long-lived portal token.
func (s *uploadService) CreateFromPortal(ctx context.Context, token string, file *multipart.FileHeader, notes string) (*models.ClientUpload, error) {
	client, err := s.clientForToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.save(ctx, client, file, notes)
}

func (s *uploadService) clientForToken(ctx context.Context, token string) (*models.Client, error) {
	session, isExist, err := s.a.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error resolving session: %w", err)
	}
	if isExist {
		if session.ExpiresAt.Before(time.Now()) {
			return nil, ErrSessionExpired
		}
		client, isExist, err := s.c.GetByID(ctx, session.ClientID)
		if err != nil {
			return nil, fmt.Errorf("error getting client: %w", err)
		}
		if !isExist {
			return nil, ErrNotFound
		}
		return client, nil
	}

	client, isExist, err := s.c.GetByPortalToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error resolving portal token: %w", err)
	}
	if !isExist {
		return nil, ErrNotFound
	}
	return client, nil
}

// CreateFromAgency is the authenticated counterpart, used when the agency
// files content on a client's behalf.
func (s *uploadService) CreateFromAgency(ctx context.Context, userID, clientID int64, file *multipart.FileHeader, notes string) (*models.ClientUpload, error) {
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

	return s.save(ctx, client, file, notes)
}

func (s *uploadService) save(ctx context.Context, client *models.Client, file *multipart.FileHeader, notes string) (upload *models.ClientUpload, err error) {
	fileContent, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return nil, fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return nil, errors.New("unsupported file type")
	}
	if _, ok := allowedUploadTypes[fileType.Extension]; !ok {
		return nil, fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	fileURL, err := s.r2.Upload(ctx, key, fileBytes, fileType.MIME.Value)
	if err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}

	upload = &models.ClientUpload{
		ClientID: client.ID,
		FileName: file.Filename,
		FileType: fileType.MIME.Value,
		FileSize: int64(len(fileBytes)),
		FileURL:  fileURL,
		Status:   models.UploadStatusNew,
	}
	if notes != "" {
		upload.Notes = sql.NullString{String: notes, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	id, err := s.up.Create(ctx, tx, upload)
	if err != nil {
		return nil, fmt.Errorf("error saving upload: %w", err)
	}
	upload.ID = id

	if _, err = s.ac.Create(ctx, tx, &models.ClientActivity{
		ClientID:     client.ID,
		ActivityType: models.ActivityTypeUpload,
	}); err != nil {
		return nil, fmt.Errorf("error recording activity: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return upload, nil
}

func (s *uploadService) List(ctx context.Context, userID, clientID int64) ([]*models.ClientUpload, error) {
	_, isExist, err := s.c.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("error getting client: %w", err)
	}
	if !isExist {
		return nil, ErrNotFound
	}

	owned, err := s.c.CheckByUserID(ctx, clientID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrForbidden
	}

	uploads, err := s.up.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("error listing uploads: %w", err)
	}
	return uploads, nil
}

func (s *uploadService) MarkReviewed(ctx context.Context, userID, uploadID int64, notes string) error {
	upload, isExist, err := s.up.GetByID(ctx, uploadID)
	if err != nil {
		return fmt.Errorf("error getting upload: %w", err)
	}
	if !isExist {
		return ErrNotFound
	}

	owned, err := s.c.CheckByUserID(ctx, upload.ClientID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrForbidden
	}

	return s.up.UpdateStatus(ctx, uploadID, models.UploadStatusReviewed, notes)
}
