package mysql

import (
	"context"
	"time"

	db2 "github.com/blogicum-app/blogicum-be/db"
	"github.com/blogicum-app/blogicum-be/model"
	"github.com/upper/db/v4"
)

type CommentDB struct {
	sess db.Session
}

func getCommentDB(sess db.Session) *CommentDB {
	return &CommentDB{sess}
}

func (cdb *CommentDB) CreateComment(ctx context.Context, req *db2.CreateComment) (int64, error) {
	res, err := cdb.sess.SQL().
		InsertInto("comment").
		Columns("post_id", "author_id", "text").
		Values(req.PostId, req.AuthorId, req.Text).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (cdb *CommentDB) UpdateComment(ctx context.Context, id int64, text string) error {
	_, err := cdb.sess.SQL().
		Update("comment").
		Set("text", text).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (cdb *CommentDB) DeleteComment(ctx context.Context, id int64) error {
	_, err := cdb.sess.SQL().
		DeleteFrom("comment").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

type flattenedComment struct {
	flattenedAuthor `db:",inline"`
	Id              int64     `db:"id"`
	PostId          int64     `db:"post_id"`
	Text            string    `db:"text"`
	CreatedAt       time.Time `db:"created_at"`
}

var commentColumns = []interface{}{
	"c.id",
	"c.post_id",
	"c.text",
	"c.created_at",
	"person.firebase_id AS author_id",
	"person.username AS author_username",
	"person.email AS author_email",
	"person.first_name AS author_first_name",
	"person.last_name AS author_last_name",
}

func (cdb *CommentDB) commentSelector() db.Selector {
	return cdb.sess.SQL().
		Select(commentColumns...).
		From("comment AS c").
		Join("person").On("c.author_id = person.firebase_id")
}

func (cdb *CommentDB) GetCommentById(ctx context.Context, id int64) (*model.Comment, error) {
	var comment flattenedComment
	if err := cdb.commentSelector().
		Where("c.id = ?", id).
		IteratorContext(ctx).
		One(&comment); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildCommentFromFlattened(&comment), nil
}

func (cdb *CommentDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var flattenedComments []flattenedComment
	if err := cdb.commentSelector().
		Where("c.post_id = ?", postId).
		OrderBy("c.created_at", "c.id").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}
	comments := make([]*model.Comment, len(flattenedComments))
	for i := range flattenedComments {
		comments[i] = buildCommentFromFlattened(&flattenedComments[i])
	}
	return comments, nil
}

func buildCommentFromFlattened(comment *flattenedComment) *model.Comment {
	return &model.Comment{
		Id:        comment.Id,
		PostId:    comment.PostId,
		Text:      comment.Text,
		Author:    buildUserFromFlattened(&comment.flattenedAuthor),
		CreatedAt: comment.CreatedAt,
	}
}
