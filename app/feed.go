package app

import (
	"context"
	"errors"
	"time"

	appDb "github.com/blogicum-app/blogicum-be/db"
	"github.com/blogicum-app/blogicum-be/model"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

// ErrNotFound marks a missing or invisible entity. Routes translate it
// to a 404; it is never a policy failure.
var ErrNotFound = errors.New("app: not found")

// ListPublic returns one page of the index feed: every post passing
// the public visibility predicate, newest pub_date first, annotated
// with its live comment count.
func ListPublic(ctx context.Context, db appDb.Database, now time.Time, page int) (*model.Feed, error) {
	return listFeed(ctx, db, &appDb.PostsFilter{PublicAsOf: &now}, page)
}

// ListByCategory returns one page of a category feed. A missing or
// unpublished category is ErrNotFound.
func ListByCategory(ctx context.Context, db appDb.Database, slug string, now time.Time, page int) (*model.Feed, error) {
	category, err := db.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.Published {
		return nil, ErrNotFound
	}
	return listFeed(ctx, db, &appDb.PostsFilter{
		PublicAsOf:   &now,
		CategorySlug: slug,
	}, page)
}

// ListByAuthor returns one page of an author's profile feed. The
// profile page shows everything the author wrote, published or not,
// so no visibility predicate applies.
func ListByAuthor(ctx context.Context, db appDb.Database, username string, page int) (*model.Feed, error) {
	user, err := db.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return listFeed(ctx, db, &appDb.PostsFilter{AuthorUsername: username}, page)
}

// GetPostDetail returns one post with its ordered comments. The
// visibility check includes the author exception: authors see their
// own unpublished and future-dated posts.
func GetPostDetail(ctx context.Context, db appDb.Database, id int64, viewer *model.User, now time.Time) (*model.PostDetail, error) {
	post, err := db.GetPostById(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil || !IsVisible(post, viewer, now) {
		return nil, ErrNotFound
	}
	comments, err := db.GetCommentsForPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.PostDetail{
		Post:     post,
		Comments: comments,
	}, nil
}

func listFeed(ctx context.Context, db appDb.Database, filter *appDb.PostsFilter, page int) (*model.Feed, error) {
	if page < 1 {
		page = 1
	}
	posts, err := db.GetPosts(ctx, &appDb.PostsListQuery{
		PostsFilter: *filter,
		Limit:       PageSize,
		Offset:      (page - 1) * PageSize,
	})
	if err != nil {
		return nil, err
	}
	total, err := db.CountPosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.Feed{
		Posts:    posts,
		Total:    total,
		Page:     page,
		PageSize: PageSize,
	}, nil
}
