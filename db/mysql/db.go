// Package mysql implements db.Database on MySQL through upper/db.
//
// Expected schema (migrations are managed outside this repo):
//
//	person   (firebase_id PK, username UNIQUE, email, first_name, last_name)
//	category (id PK, title, description, slug UNIQUE, is_published, created_at)
//	location (id PK, name, is_published, created_at)
//	post     (id PK, title, text, pub_date, is_published, image_blob_name,
//	          author_id -> person, category_id -> category NULL,
//	          location_id -> location NULL, created_at)
//	comment  (id PK, post_id -> post ON DELETE CASCADE, author_id -> person,
//	          text, created_at)
package mysql

import (
	"database/sql"

	db2 "github.com/blogicum-app/blogicum-be/db"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
)

type MySQLDB struct {
	*PostDB
	*CommentDB
	*UserDB
	*TaxonomyDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(dsn string) (db2.Database, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MySQLDB{
		PostDB:     getPostDB(sess),
		CommentDB:  getCommentDB(sess),
		UserDB:     getUserDB(sess),
		TaxonomyDB: getTaxonomyDB(sess),
		sess:       sess,
		sqlDB:      sqlDB,
	}, nil
}

func (mdb *MySQLDB) GetSQLDB() *sql.DB {
	return mdb.sqlDB
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}
