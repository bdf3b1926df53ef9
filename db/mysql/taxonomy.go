package mysql

import (
	"context"

	db2 "github.com/blogicum-app/blogicum-be/db"
	"github.com/blogicum-app/blogicum-be/model"
	"github.com/upper/db/v4"
)

// TaxonomyDB backs the admin-managed groupings: categories and
// locations. Neither is ever hard-deleted; unpublishing hides them.
type TaxonomyDB struct {
	sess db.Session
}

func getTaxonomyDB(sess db.Session) *TaxonomyDB {
	return &TaxonomyDB{sess}
}

func (tdb *TaxonomyDB) CreateCategory(ctx context.Context, req *db2.CreateCategory) (int64, error) {
	res, err := tdb.sess.SQL().
		InsertInto("category").
		Columns("title", "description", "slug", "is_published").
		Values(req.Title, req.Description, req.Slug, req.Published).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (tdb *TaxonomyDB) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := tdb.sess.SQL().
		Select("*").
		From("category").
		Where("slug = ?", slug).
		IteratorContext(ctx).
		One(&category); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (tdb *TaxonomyDB) GetCategories(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	return categories, tdb.sess.SQL().
		Select("*").
		From("category").
		OrderBy("title").
		IteratorContext(ctx).
		All(&categories)
}

func (tdb *TaxonomyDB) CreateLocation(ctx context.Context, name string) (int64, error) {
	res, err := tdb.sess.SQL().
		InsertInto("location").
		Columns("name", "is_published").
		Values(name, true).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (tdb *TaxonomyDB) GetLocations(ctx context.Context) ([]*model.Location, error) {
	var locations []*model.Location
	return locations, tdb.sess.SQL().
		Select("*").
		From("location").
		OrderBy("name").
		IteratorContext(ctx).
		All(&locations)
}
