package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/blogicum-app/blogicum-be/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	PostDatabase
	CommentDatabase
	UserDatabase
	TaxonomyDatabase
	GetSQLDB() *sql.DB
	Close() error
}

type CreatePost struct {
	AuthorId      string
	Title         string
	Text          string
	PubDate       time.Time
	Published     bool
	CategoryId    *int64
	LocationId    *int64
	ImageBlobName string
}

// UpdatePost carries every mutable post field. The author is immutable
// after creation.
type UpdatePost struct {
	Title         string
	Text          string
	PubDate       time.Time
	Published     bool
	CategoryId    *int64
	LocationId    *int64
	ImageBlobName string
}

type CreateComment struct {
	PostId   int64
	AuthorId string
	Text     string
}

type UpdateUser struct {
	Email     string
	FirstName string
	LastName  string
}

type CreateCategory struct {
	Title       string
	Description string
	Slug        string
	Published   bool
}

// PostsFilter selects the rows of a post listing. A nil PublicAsOf
// skips the public-visibility predicate entirely (profile feeds show
// unpublished and future-dated posts too).
type PostsFilter struct {
	PublicAsOf     *time.Time
	CategorySlug   string
	AuthorUsername string
}

type PostsListQuery struct {
	PostsFilter
	Limit  int
	Offset int
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	UpdatePost(ctx context.Context, id int64, req *UpdatePost) error
	// DeletePost removes the post; its comments go with it via the
	// post_id foreign key's ON DELETE CASCADE.
	DeletePost(ctx context.Context, id int64) error
	// GetPostById returns nil, nil when no such post exists.
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	GetPosts(ctx context.Context, query *PostsListQuery) ([]*model.Post, error)
	CountPosts(ctx context.Context, filter *PostsFilter) (int64, error)
}

type CommentDatabase interface {
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
	UpdateComment(ctx context.Context, id int64, text string) error
	DeleteComment(ctx context.Context, id int64) error
	// GetCommentById returns nil, nil when no such comment exists.
	GetCommentById(ctx context.Context, id int64) (*model.Comment, error)
	// GetCommentsForPost lists comments in ascending creation-time order.
	GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error)
}

type UserDatabase interface {
	CreateUser(ctx context.Context, user *model.User) error
	// GetUser looks a profile up by firebase id; nil, nil when absent.
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, req *UpdateUser) error
}

type TaxonomyDatabase interface {
	CreateCategory(ctx context.Context, req *CreateCategory) (categoryId int64, err error)
	// GetCategoryBySlug returns nil, nil when no such category exists.
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	GetCategories(ctx context.Context) ([]*model.Category, error)
	CreateLocation(ctx context.Context, name string) (locationId int64, err error)
	GetLocations(ctx context.Context) ([]*model.Location, error)
}
