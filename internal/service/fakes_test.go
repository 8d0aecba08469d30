package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/cambrewitt-ship-it/contentflow/internal/models"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
)

// Function-field fakes. The embedded interface panics on any method a test
// did not stub, which keeps unexpected calls loud.

type fakeClientRepo struct {
	repository.ClientRepository
	getByID          func(ctx context.Context, id int64) (*models.Client, bool, error)
	checkByUserID    func(ctx context.Context, clientID, userID int64) (bool, error)
	listByUserID     func(ctx context.Context, userID int64) ([]*models.Client, error)
	countByUserID    func(ctx context.Context, userID int64) (int, error)
	create           func(ctx context.Context, client *models.Client) (int64, error)
	getByPortalToken func(ctx context.Context, token string) (*models.Client, bool, error)
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id int64) (*models.Client, bool, error) {
	return f.getByID(ctx, id)
}

func (f *fakeClientRepo) CheckByUserID(ctx context.Context, clientID, userID int64) (bool, error) {
	return f.checkByUserID(ctx, clientID, userID)
}

func (f *fakeClientRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Client, error) {
	return f.listByUserID(ctx, userID)
}

func (f *fakeClientRepo) CountByUserID(ctx context.Context, userID int64) (int, error) {
	return f.countByUserID(ctx, userID)
}

func (f *fakeClientRepo) Create(ctx context.Context, client *models.Client) (int64, error) {
	return f.create(ctx, client)
}

func (f *fakeClientRepo) GetByPortalToken(ctx context.Context, token string) (*models.Client, bool, error) {
	return f.getByPortalToken(ctx, token)
}

type fakePostRepo struct {
	repository.PostRepository
	getByID              func(ctx context.Context, id int64) (*models.Post, bool, error)
	checkByUserID        func(ctx context.Context, postID, userID int64) (bool, error)
	countByUserIDSince   func(ctx context.Context, userID int64, since time.Time) (int, error)
	create               func(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	schedule             func(ctx context.Context, postID int64, date, timeOfDay string) (bool, error)
	updateApprovalStatus func(ctx context.Context, tx *sql.Tx, postID int64, status string) error
	updateCaption        func(ctx context.Context, tx *sql.Tx, postID int64, caption string) error
	updateLateInfo       func(ctx context.Context, postID int64, latePostID, lateStatus string, platforms []string) error
	listPendingByClient  func(ctx context.Context, clientID int64) ([]*models.Post, error)
	remove               func(ctx context.Context, id int64) error
}

func (f *fakePostRepo) Remove(ctx context.Context, id int64) error {
	return f.remove(ctx, id)
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, bool, error) {
	return f.getByID(ctx, id)
}

func (f *fakePostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	return f.checkByUserID(ctx, postID, userID)
}

func (f *fakePostRepo) CountByUserIDSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	return f.countByUserIDSince(ctx, userID, since)
}

func (f *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	return f.create(ctx, tx, post)
}

func (f *fakePostRepo) Schedule(ctx context.Context, postID int64, date, timeOfDay string) (bool, error) {
	return f.schedule(ctx, postID, date, timeOfDay)
}

func (f *fakePostRepo) UpdateApprovalStatus(ctx context.Context, tx *sql.Tx, postID int64, status string) error {
	return f.updateApprovalStatus(ctx, tx, postID, status)
}

func (f *fakePostRepo) UpdateCaption(ctx context.Context, tx *sql.Tx, postID int64, caption string) error {
	return f.updateCaption(ctx, tx, postID, caption)
}

func (f *fakePostRepo) UpdateLateInfo(ctx context.Context, postID int64, latePostID, lateStatus string, platforms []string) error {
	return f.updateLateInfo(ctx, postID, latePostID, lateStatus, platforms)
}

func (f *fakePostRepo) ListPendingByClientID(ctx context.Context, clientID int64) ([]*models.Post, error) {
	return f.listPendingByClient(ctx, clientID)
}

type fakeApprovalRepo struct {
	repository.ApprovalRepository
	createSession     func(ctx context.Context, session *models.ApprovalSession) (int64, error)
	getSessionByToken func(ctx context.Context, token string) (*models.ApprovalSession, bool, error)
	upsertApproval    func(ctx context.Context, tx *sql.Tx, approval *models.PostApproval) error
	createRevision    func(ctx context.Context, tx *sql.Tx, postID int64, caption, editedBy string) (int, error)
	listApprovals     func(ctx context.Context, postID int64) ([]*models.PostApproval, error)
}

func (f *fakeApprovalRepo) ListApprovalsByPostID(ctx context.Context, postID int64) ([]*models.PostApproval, error) {
	return f.listApprovals(ctx, postID)
}

func (f *fakeApprovalRepo) CreateSession(ctx context.Context, session *models.ApprovalSession) (int64, error) {
	return f.createSession(ctx, session)
}

func (f *fakeApprovalRepo) GetSessionByToken(ctx context.Context, token string) (*models.ApprovalSession, bool, error) {
	return f.getSessionByToken(ctx, token)
}

func (f *fakeApprovalRepo) UpsertApproval(ctx context.Context, tx *sql.Tx, approval *models.PostApproval) error {
	return f.upsertApproval(ctx, tx, approval)
}

func (f *fakeApprovalRepo) CreateRevision(ctx context.Context, tx *sql.Tx, postID int64, caption, editedBy string) (int, error) {
	return f.createRevision(ctx, tx, postID, caption, editedBy)
}

type fakeActivityRepo struct {
	repository.ActivityRepository
	create                  func(ctx context.Context, tx *sql.Tx, activity *models.ClientActivity) (int64, error)
	getViewedAt             func(ctx context.Context, userID, clientID int64) (time.Time, error)
	markViewed              func(ctx context.Context, userID, clientID int64) error
	countUploadsSince       func(ctx context.Context, clientID int64, since time.Time) (int, error)
	countApprovedPostsSince func(ctx context.Context, clientID int64, since time.Time) (int, error)
	countActivitySince      func(ctx context.Context, clientID int64, activityType string, since time.Time) (int, error)
}

func (f *fakeActivityRepo) Create(ctx context.Context, tx *sql.Tx, activity *models.ClientActivity) (int64, error) {
	return f.create(ctx, tx, activity)
}

func (f *fakeActivityRepo) GetViewedAt(ctx context.Context, userID, clientID int64) (time.Time, error) {
	return f.getViewedAt(ctx, userID, clientID)
}

func (f *fakeActivityRepo) MarkViewed(ctx context.Context, userID, clientID int64) error {
	return f.markViewed(ctx, userID, clientID)
}

func (f *fakeActivityRepo) CountUploadsSince(ctx context.Context, clientID int64, since time.Time) (int, error) {
	return f.countUploadsSince(ctx, clientID, since)
}

func (f *fakeActivityRepo) CountApprovedPostsSince(ctx context.Context, clientID int64, since time.Time) (int, error) {
	return f.countApprovedPostsSince(ctx, clientID, since)
}

func (f *fakeActivityRepo) CountActivitySince(ctx context.Context, clientID int64, activityType string, since time.Time) (int, error) {
	return f.countActivitySince(ctx, clientID, activityType, since)
}

type fakeSubscriptionRepo struct {
	repository.SubscriptionRepository
	getByUserID  func(ctx context.Context, userID int64) (*models.Subscription, bool, error)
	create       func(ctx context.Context, subscription *models.Subscription) (int64, error)
	update       func(ctx context.Context, subscription *models.Subscription) error
	deductCredit func(ctx context.Context, userID int64, amount int) (int, error)
	expireTrials func(ctx context.Context, now time.Time) (int64, error)
}

func (f *fakeSubscriptionRepo) GetByUserID(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
	return f.getByUserID(ctx, userID)
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) (int64, error) {
	return f.create(ctx, subscription)
}

func (f *fakeSubscriptionRepo) Update(ctx context.Context, subscription *models.Subscription) error {
	return f.update(ctx, subscription)
}

func (f *fakeSubscriptionRepo) DeductCredit(ctx context.Context, userID int64, amount int) (int, error) {
	return f.deductCredit(ctx, userID, amount)
}

func (f *fakeSubscriptionRepo) ExpireTrials(ctx context.Context, now time.Time) (int64, error) {
	return f.expireTrials(ctx, now)
}

type fakePublishHistoryRepo struct {
	repository.PublishHistoryRepository
	create       func(ctx context.Context, history *models.PublishHistory) (int64, error)
	listByPostID func(ctx context.Context, postID int64) ([]*models.PublishHistory, error)
}

func (f *fakePublishHistoryRepo) ListByPostID(ctx context.Context, postID int64) ([]*models.PublishHistory, error) {
	return f.listByPostID(ctx, postID)
}

func (f *fakePublishHistoryRepo) Create(ctx context.Context, history *models.PublishHistory) (int64, error) {
	return f.create(ctx, history)
}

type fakeLateService struct {
	LateService
	deletePost func(ctx context.Context, latePostID string) error
}

func (f *fakeLateService) DeletePost(ctx context.Context, latePostID string) error {
	return f.deletePost(ctx, latePostID)
}
