package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	config "github.com/cambrewitt-ship-it/contentflow/configs"
	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
	"github.com/cambrewitt-ship-it/contentflow/internal/transfer"
)

// LateService pushes approved, scheduled posts to the Late scheduling API
// and records the returned post id and status on the internal row. Upstream
// failures are surfaced to the caller without retry.
type LateService interface {
	SchedulePost(ctx context.Context, postID int64, platforms []string, timezone string) error
	DeletePost(ctx context.Context, latePostID string) error
	GetAccounts(ctx context.Context, profileID string) ([]transfer.LateAccount, error)
}

type lateService struct {
	cfg config.Config
	pr  repository.PostRepository
	c   repository.ClientRepository
	ph  repository.PublishHistoryRepository
}

func NewLateService(
	cfg config.Config,
	pr repository.PostRepository,
	c repository.ClientRepository,
	ph repository.PublishHistoryRepository) LateService {
	return &lateService{
		cfg: cfg,
		pr:  pr,
		c:   c,
		ph:  ph,
	}
}

func (s *lateService) SchedulePost(ctx context.Context, postID int64, platforms []string, timezone string) error {
	if s.cfg.LateAPIKey == "" {
		err := errors.New("LATE_API_KEY is not configured")
		slog.Info(err.Error())
		return err
	}

	post, isExist, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("error getting post: %w", err)
	}
	if !isExist {
		return ErrNotFound
	}

	client, isExist, err := s.c.GetByID(ctx, post.ClientID)
	if err != nil {
		return fmt.Errorf("error getting client: %w", err)
	}
	if !isExist {
		return ErrNotFound
	}
	if client.LateProfileID == "" {
		return errors.New("client has no scheduler profile linked")
	}

	if !post.ScheduledDate.Valid || !post.ScheduledTime.Valid {
		return errors.New("post has no scheduled date or time")
	}

	if len(platforms) == 0 {
		return errors.New("no platforms selected")
	}

	// The columns are text in "2006-01-02" / "15:04" form. Parsing before
	// reformatting keeps a schema change from smuggling a malformed
	// timestamp to the scheduler.
	scheduledAt, err := time.Parse("2006-01-02 15:04", post.ScheduledDate.String+" "+post.ScheduledTime.String)
	if err != nil {
		return fmt.Errorf("post has malformed schedule: %w", err)
	}

	payload := transfer.LatePostRequest{
		ProfileID:    client.LateProfileID,
		Content:      post.Caption,
		ScheduledFor: scheduledAt.Format("2006-01-02T15:04:05"),
		Timezone:     timezone,
	}
	for _, platform := range platforms {
		payload.Platforms = append(payload.Platforms, transfer.LatePlatform{Platform: platform})
	}
	if post.ImageURL.Valid {
		payload.MediaItems = append(payload.MediaItems, transfer.LateMediaItem{Type: "image", URL: post.ImageURL.String})
	}

	var result transfer.LatePostResponse
	err = s.do(ctx, http.MethodPost, "/api/v1/posts", payload, &result)

	history := &models.PublishHistory{
		ClientID: post.ClientID,
		PostID:   post.ID,
	}

	if err != nil {
		history.ErrorMessage = err.Error()
		if _, histErr := s.ph.Create(ctx, history); histErr != nil {
			slog.Info(histErr.Error())
		}
		if updErr := s.pr.UpdateLateInfo(ctx, post.ID, "", models.LateStatusFailed, platforms); updErr != nil {
			slog.Info(updErr.Error())
		}
		return err
	}

	status := result.Post.Status
	if status == "" {
		status = models.LateStatusScheduled
	}

	history.LatePostID = result.Post.ID
	if _, err := s.ph.Create(ctx, history); err != nil {
		slog.Info(err.Error())
	}

	if err := s.pr.UpdateLateInfo(ctx, post.ID, result.Post.ID, status, platforms); err != nil {
		return fmt.Errorf("error saving scheduler response: %w", err)
	}
	return nil
}

func (s *lateService) DeletePost(ctx context.Context, latePostID string) error {
	if latePostID == "" {
		return errors.New("late post id is empty")
	}
	return s.do(ctx, http.MethodDelete, "/api/v1/posts/"+latePostID, nil, nil)
}

func (s *lateService) GetAccounts(ctx context.Context, profileID string) ([]transfer.LateAccount, error) {
	var result transfer.LateAccountsResponse
	path := "/api/v1/accounts"
	if profileID != "" {
		path += "?profileId=" + profileID
	}
	if err := s.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Accounts, nil
}

func (s *lateService) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			slog.Info(err.Error())
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.cfg.LateBaseURL+path, reader)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.LateAPIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		slog.Error(err.Error())
		return fmt.Errorf("scheduler request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("scheduler returned %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			slog.Info(err.Error())
			return fmt.Errorf("error decoding scheduler response: %w", err)
		}
	}
	return nil
}
