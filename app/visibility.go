package app

import (
	"time"

	"github.com/blogicum-app/blogicum-be/model"
)

// IsPubliclyVisible reports whether a post may be shown to an
// arbitrary viewer: it is published, its publication date has passed,
// and its category (if it has one) is itself published. A post without
// a category carries no category constraint.
func IsPubliclyVisible(post *model.Post, now time.Time) bool {
	return post.Published &&
		!post.PubDate.After(now) &&
		(post.Category == nil || post.Category.Published)
}

// IsVisible decides single-post (detail) visibility. Authors may
// always preview their own unpublished or future-dated posts; list
// queries must use the public predicate instead and are never
// author-relaxed.
func IsVisible(post *model.Post, viewer *model.User, now time.Time) bool {
	if viewer != nil && post.Author != nil && viewer.Id == post.Author.Id {
		return true
	}
	return IsPubliclyVisible(post, now)
}
