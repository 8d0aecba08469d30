package models

import "time"

type PublishHistory struct {
	ID           int64     `db:"id" json:"id"`
	ClientID     int64     `db:"client_id" json:"client_id"`
	PostID       int64     `db:"post_id" json:"post_id"`
	LatePostID   string    `db:"late_post_id" json:"late_post_id"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
