package models

import "time"

type Client struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description"`
	Website       string    `db:"website" json:"website"`
	LogoURL       string    `db:"logo_url" json:"logo_url"`
	BrandColor    string    `db:"brand_color" json:"brand_color"`
	LateProfileID string    `db:"late_profile_id" json:"late_profile_id"`
	PortalToken   string    `db:"portal_token" json:"portal_token"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type Project struct {
	ID          int64     `db:"id" json:"id"`
	ClientID    int64     `db:"client_id" json:"client_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)
