package models

import (
	"database/sql"
	"time"
)

type ClientUpload struct {
	ID        int64          `db:"id" json:"id"`
	ClientID  int64          `db:"client_id" json:"client_id"`
	FileName  string         `db:"file_name" json:"file_name"`
	FileType  string         `db:"file_type" json:"file_type"`
	FileSize  int64          `db:"file_size" json:"file_size"`
	FileURL   string         `db:"file_url" json:"file_url"`
	Status    string         `db:"status" json:"status"`
	Notes     sql.NullString `db:"notes" json:"notes"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

const (
	UploadStatusNew      = "new"
	UploadStatusReviewed = "reviewed"
)

type ClientActivity struct {
	ID           int64          `db:"id" json:"id"`
	ClientID     int64          `db:"client_id" json:"client_id"`
	ActivityType string         `db:"activity_type" json:"activity_type"`
	Metadata     sql.NullString `db:"metadata" json:"metadata"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

const (
	ActivityTypeUpload      = "upload"
	ActivityTypeApproval    = "approval"
	ActivityTypePortalVisit = "portal_visit"
)

// Watermark for unread-count computation; never-viewed clients count
// everything since the epoch.
type ClientActivityView struct {
	UserID   int64     `db:"user_id" json:"user_id"`
	ClientID int64     `db:"client_id" json:"client_id"`
	ViewedAt time.Time `db:"viewed_at" json:"viewed_at"`
}
