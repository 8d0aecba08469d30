package models

import (
	"database/sql"
	"time"
)

type Post struct {
	ID                 int64          `db:"id" json:"id"`
	ClientID           int64          `db:"client_id" json:"client_id"`
	ProjectID          sql.NullInt64  `db:"project_id" json:"project_id"`
	Caption            string         `db:"caption" json:"caption"`
	ImageURL           sql.NullString `db:"image_url" json:"image_url"`
	ApprovalStatus     string         `db:"approval_status" json:"approval_status"`
	State              string         `db:"state" json:"state"`
	ScheduledDate      sql.NullString `db:"scheduled_date" json:"scheduled_date"`
	ScheduledTime      sql.NullString `db:"scheduled_time" json:"scheduled_time"`
	LatePostID         sql.NullString `db:"late_post_id" json:"late_post_id"`
	LateStatus         sql.NullString `db:"late_status" json:"late_status"`
	PlatformsScheduled []string       `db:"platforms_scheduled" json:"platforms_scheduled"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

const (
	PostStateUnscheduled = "unscheduled"
	PostStateScheduled   = "scheduled"
)

const (
	ApprovalStatusPending        = "pending"
	ApprovalStatusApproved       = "approved"
	ApprovalStatusRejected       = "rejected"
	ApprovalStatusNeedsAttention = "needs_attention"
	ApprovalStatusDraft          = "draft"
)

const (
	LateStatusScheduled = "scheduled"
	LateStatusPublished = "published"
	LateStatusFailed    = "failed"
)
