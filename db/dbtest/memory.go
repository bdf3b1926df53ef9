// Package dbtest provides an in-memory db.Database for tests. It
// mirrors the filter and ordering semantics of the mysql package so
// query-service and handler tests can run without a MySQL server.
package dbtest

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	db2 "github.com/blogicum-app/blogicum-be/db"
	"github.com/blogicum-app/blogicum-be/model"
	"github.com/go-sql-driver/mysql"
)

type postRecord struct {
	id        int64
	req       db2.CreatePost
	createdAt time.Time
}

type commentRecord struct {
	id        int64
	req       db2.CreateComment
	createdAt time.Time
}

type MemDB struct {
	mu         sync.Mutex
	users      map[string]*model.User
	posts      map[int64]*postRecord
	comments   map[int64]*commentRecord
	categories map[int64]*model.Category
	locations  map[int64]*model.Location
	nextId     int64
	// clock is advanced on every insert so creation-time ordering is
	// deterministic within a test
	clock time.Time
}

var _ db2.Database = (*MemDB)(nil)

func New() *MemDB {
	return &MemDB{
		users:      make(map[string]*model.User),
		posts:      make(map[int64]*postRecord),
		comments:   make(map[int64]*commentRecord),
		categories: make(map[int64]*model.Category),
		locations:  make(map[int64]*model.Location),
		clock:      time.Date(2024, 5, 18, 12, 0, 0, 0, time.UTC),
	}
}

func (m *MemDB) GetSQLDB() *sql.DB { return nil }
func (m *MemDB) Close() error      { return nil }

func (m *MemDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *MemDB) nextSeq() int64 {
	m.nextId++
	return m.nextId
}

// -- posts

func (m *MemDB) CreatePost(ctx context.Context, req *db2.CreatePost) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSeq()
	m.posts[id] = &postRecord{id: id, req: *req, createdAt: m.tick()}
	return id, nil
}

func (m *MemDB) UpdatePost(ctx context.Context, id int64, req *db2.UpdatePost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.posts[id]
	if !ok {
		return nil
	}
	record.req.Title = req.Title
	record.req.Text = req.Text
	record.req.PubDate = req.PubDate
	record.req.Published = req.Published
	record.req.CategoryId = req.CategoryId
	record.req.LocationId = req.LocationId
	record.req.ImageBlobName = req.ImageBlobName
	return nil
}

func (m *MemDB) DeletePost(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.posts, id)
	for cid, comment := range m.comments {
		if comment.req.PostId == id {
			delete(m.comments, cid)
		}
	}
	return nil
}

func (m *MemDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	return m.buildPost(record), nil
}

func (m *MemDB) GetPosts(ctx context.Context, query *db2.PostsListQuery) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := m.matchPosts(&query.PostsFilter)
	if query.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[query.Offset:]
	if query.Limit > 0 && query.Limit < len(matched) {
		matched = matched[:query.Limit]
	}
	posts := make([]*model.Post, len(matched))
	for i, record := range matched {
		posts[i] = m.buildPost(record)
	}
	return posts, nil
}

func (m *MemDB) CountPosts(ctx context.Context, filter *db2.PostsFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.matchPosts(filter))), nil
}

func (m *MemDB) matchPosts(filter *db2.PostsFilter) []*postRecord {
	var matched []*postRecord
	for _, record := range m.posts {
		if !m.postMatches(record, filter) {
			continue
		}
		matched = append(matched, record)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].req.PubDate.Equal(matched[j].req.PubDate) {
			return matched[i].req.PubDate.After(matched[j].req.PubDate)
		}
		return matched[i].id > matched[j].id
	})
	return matched
}

func (m *MemDB) postMatches(record *postRecord, filter *db2.PostsFilter) bool {
	category := m.categoryOf(record)
	if filter.PublicAsOf != nil {
		if !record.req.Published || record.req.PubDate.After(*filter.PublicAsOf) {
			return false
		}
		if category != nil && !category.Published {
			return false
		}
	}
	if filter.CategorySlug != "" {
		if category == nil || category.Slug != filter.CategorySlug {
			return false
		}
	}
	if filter.AuthorUsername != "" {
		author := m.users[record.req.AuthorId]
		if author == nil || author.Username != filter.AuthorUsername {
			return false
		}
	}
	return true
}

func (m *MemDB) categoryOf(record *postRecord) *model.Category {
	if record.req.CategoryId == nil {
		return nil
	}
	return m.categories[*record.req.CategoryId]
}

func (m *MemDB) buildPost(record *postRecord) *model.Post {
	var commentCount int64
	for _, comment := range m.comments {
		if comment.req.PostId == record.id {
			commentCount++
		}
	}
	post := &model.Post{
		Id:            record.id,
		Title:         record.req.Title,
		Text:          record.req.Text,
		PubDate:       record.req.PubDate,
		Published:     record.req.Published,
		ImageBlobName: record.req.ImageBlobName,
		Author:        m.users[record.req.AuthorId],
		Category:      m.categoryOf(record),
		CommentCount:  commentCount,
		CreatedAt:     record.createdAt,
	}
	if record.req.LocationId != nil {
		post.Location = m.locations[*record.req.LocationId]
	}
	return post
}

// -- comments

func (m *MemDB) CreateComment(ctx context.Context, req *db2.CreateComment) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSeq()
	m.comments[id] = &commentRecord{id: id, req: *req, createdAt: m.tick()}
	return id, nil
}

func (m *MemDB) UpdateComment(ctx context.Context, id int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.comments[id]; ok {
		record.req.Text = text
	}
	return nil
}

func (m *MemDB) DeleteComment(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.comments, id)
	return nil
}

func (m *MemDB) GetCommentById(ctx context.Context, id int64) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.comments[id]
	if !ok {
		return nil, nil
	}
	return m.buildComment(record), nil
}

func (m *MemDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*commentRecord
	for _, record := range m.comments {
		if record.req.PostId == postId {
			matched = append(matched, record)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].createdAt.Equal(matched[j].createdAt) {
			return matched[i].createdAt.Before(matched[j].createdAt)
		}
		return matched[i].id < matched[j].id
	})
	comments := make([]*model.Comment, len(matched))
	for i, record := range matched {
		comments[i] = m.buildComment(record)
	}
	return comments, nil
}

func (m *MemDB) buildComment(record *commentRecord) *model.Comment {
	return &model.Comment{
		Id:        record.id,
		PostId:    record.req.PostId,
		Text:      record.req.Text,
		Author:    m.users[record.req.AuthorId],
		CreatedAt: record.createdAt,
	}
}

// -- users

func (m *MemDB) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Id == user.Id {
			return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		}
	}
	copied := *user
	m.users[user.Id] = &copied
	return nil
}

func (m *MemDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *MemDB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MemDB) UpdateUser(ctx context.Context, id string, req *db2.UpdateUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		user.Email = req.Email
		user.FirstName = req.FirstName
		user.LastName = req.LastName
	}
	return nil
}

// -- taxonomy

func (m *MemDB) CreateCategory(ctx context.Context, req *db2.CreateCategory) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSeq()
	m.categories[id] = &model.Category{
		Id:          id,
		Title:       req.Title,
		Description: req.Description,
		Slug:        req.Slug,
		Published:   req.Published,
		CreatedAt:   m.tick(),
	}
	return id, nil
}

func (m *MemDB) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, category := range m.categories {
		if category.Slug == slug {
			copied := *category
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MemDB) GetCategories(ctx context.Context) ([]*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	categories := make([]*model.Category, 0, len(m.categories))
	for _, category := range m.categories {
		copied := *category
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Title < categories[j].Title
	})
	return categories, nil
}

func (m *MemDB) CreateLocation(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSeq()
	m.locations[id] = &model.Location{
		Id:        id,
		Name:      name,
		Published: true,
		CreatedAt: m.tick(),
	}
	return id, nil
}

func (m *MemDB) GetLocations(ctx context.Context) ([]*model.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	locations := make([]*model.Location, 0, len(m.locations))
	for _, location := range m.locations {
		copied := *location
		locations = append(locations, &copied)
	}
	sort.Slice(locations, func(i, j int) bool {
		return locations[i].Name < locations[j].Name
	})
	return locations, nil
}
