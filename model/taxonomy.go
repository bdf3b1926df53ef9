package model

import "time"

// Category is an admin-managed grouping of posts. Categories are never
// hard-deleted while referenced; unpublishing hides every post in them.
type Category struct {
	Id          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Slug        string    `db:"slug" json:"slug"`
	Published   bool      `db:"is_published" json:"published"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Location is an optional named place a post can be attached to.
type Location struct {
	Id        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Published bool      `db:"is_published" json:"published"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
