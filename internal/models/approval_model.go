package models

import (
	"database/sql"
	"time"
)

type ApprovalSession struct {
	ID        int64     `db:"id" json:"id"`
	ClientID  int64     `db:"client_id" json:"client_id"`
	Token     string    `db:"token" json:"token"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PostApproval struct {
	ID        int64          `db:"id" json:"id"`
	SessionID int64          `db:"session_id" json:"session_id"`
	PostID    int64          `db:"post_id" json:"post_id"`
	Decision  string         `db:"decision" json:"decision"`
	Comments  sql.NullString `db:"comments" json:"comments"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

type PostRevision struct {
	ID             int64     `db:"id" json:"id"`
	PostID         int64     `db:"post_id" json:"post_id"`
	RevisionNumber int       `db:"revision_number" json:"revision_number"`
	Caption        string    `db:"caption" json:"caption"`
	EditedBy       string    `db:"edited_by" json:"edited_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
