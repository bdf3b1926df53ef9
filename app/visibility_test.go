package app

import (
	"testing"
	"time"

	"github.com/blogicum-app/blogicum-be/model"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func publicPost() *model.Post {
	return &model.Post{
		Id:        1,
		Title:     "hello",
		Published: true,
		PubDate:   testNow.Add(-time.Hour),
		Author:    &model.User{Id: "uid-alice", Username: "alice"},
	}
}

func TestIsPubliclyVisible(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.Post)
		want   bool
	}{
		{
			name:   "published and due",
			mutate: func(p *model.Post) {},
			want:   true,
		},
		{
			name:   "unpublished",
			mutate: func(p *model.Post) { p.Published = false },
			want:   false,
		},
		{
			name:   "future dated",
			mutate: func(p *model.Post) { p.PubDate = testNow.Add(24 * time.Hour) },
			want:   false,
		},
		{
			name:   "pub date exactly now",
			mutate: func(p *model.Post) { p.PubDate = testNow },
			want:   true,
		},
		{
			name:   "published category",
			mutate: func(p *model.Post) { p.Category = &model.Category{Slug: "travel", Published: true} },
			want:   true,
		},
		{
			name:   "unpublished category",
			mutate: func(p *model.Post) { p.Category = &model.Category{Slug: "travel", Published: false} },
			want:   false,
		},
		{
			name:   "no category applies no category constraint",
			mutate: func(p *model.Post) { p.Category = nil },
			want:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := publicPost()
			tt.mutate(post)
			if got := IsPubliclyVisible(post, testNow); got != tt.want {
				t.Errorf("IsPubliclyVisible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsVisibleAuthorException(t *testing.T) {
	author := &model.User{Id: "uid-alice", Username: "alice"}
	stranger := &model.User{Id: "uid-bob", Username: "bob"}

	post := publicPost()
	post.Published = false
	post.PubDate = testNow.Add(48 * time.Hour)
	post.Category = &model.Category{Slug: "travel", Published: false}

	if !IsVisible(post, author, testNow) {
		t.Error("author must always see their own post")
	}
	if IsVisible(post, stranger, testNow) {
		t.Error("stranger must not see an unpublished post")
	}
	if IsVisible(post, nil, testNow) {
		t.Error("anonymous viewer must not see an unpublished post")
	}
}

func TestIsVisibleMatchesPublicPredicateForStrangers(t *testing.T) {
	stranger := &model.User{Id: "uid-bob", Username: "bob"}
	posts := []*model.Post{publicPost()}
	hidden := publicPost()
	hidden.Published = false
	posts = append(posts, hidden)
	future := publicPost()
	future.PubDate = testNow.Add(time.Minute)
	posts = append(posts, future)

	for _, post := range posts {
		if IsVisible(post, stranger, testNow) != IsPubliclyVisible(post, testNow) {
			t.Errorf("visibility for a non-author diverged from the public predicate (post %+v)", post)
		}
	}
}
