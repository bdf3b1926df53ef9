package mysql

import (
	"context"
	"database/sql"
	"time"

	db2 "github.com/blogicum-app/blogicum-be/db"
	"github.com/blogicum-app/blogicum-be/model"
	"github.com/blogicum-app/blogicum-be/util"
	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *db2.CreatePost) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("post").
		Columns("author_id", "title", "text", "pub_date", "is_published",
			"category_id", "location_id", "image_blob_name").
		Values(req.AuthorId, req.Title, req.Text, req.PubDate, req.Published,
			req.CategoryId, req.LocationId, req.ImageBlobName).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (pdb *PostDB) UpdatePost(ctx context.Context, id int64, req *db2.UpdatePost) error {
	_, err := pdb.sess.SQL().
		Update("post").
		Set(map[string]interface{}{
			"title":           req.Title,
			"text":            req.Text,
			"pub_date":        req.PubDate,
			"is_published":    req.Published,
			"category_id":     req.CategoryId,
			"location_id":     req.LocationId,
			"image_blob_name": req.ImageBlobName,
		}).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (pdb *PostDB) DeletePost(ctx context.Context, id int64) error {
	_, err := pdb.sess.SQL().
		DeleteFrom("post").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

type flattenedAuthor struct {
	AuthorId        string `db:"author_id"`
	AuthorUsername  string `db:"author_username"`
	AuthorEmail     string `db:"author_email"`
	AuthorFirstName string `db:"author_first_name"`
	AuthorLastName  string `db:"author_last_name"`
}

type flattenedPost struct {
	flattenedAuthor    `db:",inline"`
	Id                 int64          `db:"id"`
	Title              string         `db:"title"`
	Text               string         `db:"text"`
	PubDate            time.Time      `db:"pub_date"`
	Published          bool           `db:"is_published"`
	ImageBlobName      string         `db:"image_blob_name"`
	CreatedAt          time.Time      `db:"created_at"`
	CommentCount       int64          `db:"comment_count"`
	CategoryId         sql.NullInt64  `db:"category_id"`
	CategoryTitle      sql.NullString `db:"category_title"`
	CategorySlug       sql.NullString `db:"category_slug"`
	CategoryPublished  sql.NullBool   `db:"category_is_published"`
	LocationId         sql.NullInt64  `db:"location_id"`
	LocationName       sql.NullString `db:"location_name"`
	LocationPublished  sql.NullBool   `db:"location_is_published"`
}

var postColumns = []interface{}{
	"p.id",
	"p.title",
	"p.text",
	"p.pub_date",
	"p.is_published",
	"p.image_blob_name",
	"p.created_at",
	"person.firebase_id AS author_id",
	"person.username AS author_username",
	"person.email AS author_email",
	"person.first_name AS author_first_name",
	"person.last_name AS author_last_name",
	"c.id AS category_id",
	"c.title AS category_title",
	"c.slug AS category_slug",
	"c.is_published AS category_is_published",
	"l.id AS location_id",
	"l.name AS location_name",
	"l.is_published AS location_is_published",
	// counts must be live; no cached counter column
	db.Raw("(SELECT COUNT(*) FROM comment cm WHERE cm.post_id = p.id) AS comment_count"),
}

func (pdb *PostDB) postSelector() db.Selector {
	return pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		LeftJoin("category AS c").On("p.category_id = c.id").
		LeftJoin("location AS l").On("p.location_id = l.id")
}

func postsFilterCond(filter *db2.PostsFilter) *db.AndExpr {
	cond := db.And()
	if filter.PublicAsOf != nil {
		cond = cond.And(db.Raw(
			"p.is_published AND p.pub_date <= ? AND (p.category_id IS NULL OR c.is_published)",
			*filter.PublicAsOf))
	}
	if filter.CategorySlug != "" {
		cond = cond.And(db.Raw("c.slug = ?", filter.CategorySlug))
	}
	if filter.AuthorUsername != "" {
		cond = cond.And(db.Raw("person.username = ?", filter.AuthorUsername))
	}
	return cond
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post flattenedPost
	if err := pdb.postSelector().
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildPostFromFlattened(&post), nil
}

func (pdb *PostDB) GetPosts(ctx context.Context, query *db2.PostsListQuery) ([]*model.Post, error) {
	var flattenedPosts []flattenedPost
	if err := pdb.postSelector().
		Where(postsFilterCond(&query.PostsFilter)).
		OrderBy("p.pub_date DESC", "p.id DESC").
		Limit(query.Limit).
		Offset(query.Offset).
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(flattenedPosts))
	for i := range flattenedPosts {
		posts[i] = buildPostFromFlattened(&flattenedPosts[i])
	}
	return posts, nil
}

func (pdb *PostDB) CountPosts(ctx context.Context, filter *db2.PostsFilter) (int64, error) {
	var row struct {
		Total int64 `db:"total"`
	}
	if err := pdb.sess.SQL().
		Select(db.Raw("COUNT(*) AS total")).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		LeftJoin("category AS c").On("p.category_id = c.id").
		Where(postsFilterCond(filter)).
		IteratorContext(ctx).
		One(&row); err != nil {
		return 0, err
	}
	return row.Total, nil
}

func buildPostFromFlattened(post *flattenedPost) *model.Post {
	built := &model.Post{
		Id:            post.Id,
		Title:         post.Title,
		Text:          post.Text,
		PubDate:       post.PubDate,
		Published:     post.Published,
		ImageBlobName: post.ImageBlobName,
		Author:        buildUserFromFlattened(&post.flattenedAuthor),
		CommentCount:  post.CommentCount,
		CreatedAt:     post.CreatedAt,
	}
	if post.CategoryId.Valid {
		built.Category = &model.Category{
			Id:        post.CategoryId.Int64,
			Title:     post.CategoryTitle.String,
			Slug:      post.CategorySlug.String,
			Published: post.CategoryPublished.Bool,
		}
	}
	if post.LocationId.Valid {
		built.Location = &model.Location{
			Id:        post.LocationId.Int64,
			Name:      post.LocationName.String,
			Published: post.LocationPublished.Bool,
		}
	}
	return built
}

func buildUserFromFlattened(author *flattenedAuthor) *model.User {
	return &model.User{
		Id:        author.AuthorId,
		Username:  author.AuthorUsername,
		Email:     author.AuthorEmail,
		FirstName: author.AuthorFirstName,
		LastName:  author.AuthorLastName,
		Avatar:    util.Avatar(author.AuthorUsername),
	}
}
