package model

import (
	"time"
)

type Post struct {
	Id            int64     `json:"id"`
	Title         string    `json:"title"`
	Text          string    `json:"text"`
	PubDate       time.Time `json:"pubDate"`
	Published     bool      `json:"published"`
	ImageBlobName string    `json:"imageBlobName,omitempty"`
	Author        *User     `json:"author"`
	Category      *Category `json:"category,omitempty"`
	Location      *Location `json:"location,omitempty"`
	CommentCount  int64     `json:"commentCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Comment struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"postId"`
	Text      string    `json:"text"`
	Author    *User     `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Feed is one page of a post listing plus the information the caller
// needs to paginate it.
type Feed struct {
	Posts    []*Post `json:"posts"`
	Total    int64   `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
}

// PostDetail is a single post with its comments in ascending
// creation-time order.
type PostDetail struct {
	*Post
	Comments []*Comment `json:"comments"`
}
