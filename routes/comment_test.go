package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	appDb "github.com/blogicum-app/blogicum-be/db"
)

func (ts *testServer) getDetail(t *testing.T, postId int64, uid string) *detailEnvelope {
	t.Helper()
	w := ts.do(t, http.MethodGet, fmt.Sprintf("/posts/%d", postId), uid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail status = %d (body %s)", w.Code, w.Body.String())
	}
	var envelope detailEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return &envelope
}

func TestAddCommentIncrementsLiveCount(t *testing.T) {
	ts := newTestServer(t)
	before := ts.getDetail(t, ts.alicePostId, "")

	w := ts.do(t, http.MethodPost, fmt.Sprintf("/add_comment/%d", ts.alicePostId), "uid-bob",
		url.Values{"text": {"first!"}})
	assertRedirect(t, w, fmt.Sprintf("/posts/%d/", ts.alicePostId))

	after := ts.getDetail(t, ts.alicePostId, "")
	if after.Data.CommentCount != before.Data.CommentCount+1 {
		t.Errorf("comment count = %d, want %d", after.Data.CommentCount, before.Data.CommentCount+1)
	}
	last := after.Data.Comments[len(after.Data.Comments)-1]
	if last.Text != "first!" {
		t.Errorf("new comment not in list, last = %q", last.Text)
	}
}

func TestAddCommentRequiresVisiblePost(t *testing.T) {
	ts := newTestServer(t)

	// anonymous
	w := ts.do(t, http.MethodPost, fmt.Sprintf("/add_comment/%d", ts.alicePostId), "", url.Values{"text": {"hi"}})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous comment: status = %d, want 401", w.Code)
	}
	// missing post
	w = ts.do(t, http.MethodPost, "/add_comment/99999", "uid-bob", url.Values{"text": {"hi"}})
	if w.Code != http.StatusNotFound {
		t.Errorf("missing post: status = %d, want 404", w.Code)
	}
	// invisible post: bob's draft is no comment target for alice
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/add_comment/%d", ts.hiddenId), "uid-alice", url.Values{"text": {"hi"}})
	if w.Code != http.StatusNotFound {
		t.Errorf("invisible post: status = %d, want 404", w.Code)
	}
	// empty text
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/add_comment/%d", ts.alicePostId), "uid-bob", url.Values{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty text: status = %d, want 400", w.Code)
	}
}

func TestEditCommentOwnership(t *testing.T) {
	ts := newTestServer(t)
	commentId, err := ts.db.CreateComment(context.Background(), &appDb.CreateComment{
		PostId: ts.alicePostId, AuthorId: "uid-bob", Text: "original",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	target := fmt.Sprintf("/posts/%d/edit_comment/%d", ts.alicePostId, commentId)
	detail := fmt.Sprintf("/posts/%d/", ts.alicePostId)

	// alice owns the post but not the comment
	w := ts.do(t, http.MethodPost, target, "uid-alice", url.Values{"text": {"hijacked"}})
	assertRedirect(t, w, detail)
	comment, err := ts.db.GetCommentById(context.Background(), commentId)
	if err != nil {
		t.Fatalf("get comment: %v", err)
	}
	if comment.Text != "original" {
		t.Errorf("comment mutated by non-owner: %q", comment.Text)
	}

	w = ts.do(t, http.MethodPost, target, "uid-bob", url.Values{"text": {"edited"}})
	assertRedirect(t, w, detail)
	comment, err = ts.db.GetCommentById(context.Background(), commentId)
	if err != nil {
		t.Fatalf("get comment: %v", err)
	}
	if comment.Text != "edited" {
		t.Errorf("text = %q, want %q", comment.Text, "edited")
	}

	// cid under the wrong post id resolves to nothing
	wrong := fmt.Sprintf("/posts/%d/edit_comment/%d", ts.hiddenId, commentId)
	if w := ts.do(t, http.MethodPost, wrong, "uid-bob", url.Values{"text": {"x"}}); w.Code != http.StatusNotFound {
		t.Errorf("mismatched post id: status = %d, want 404", w.Code)
	}
}

func TestDeleteCommentIdempotence(t *testing.T) {
	ts := newTestServer(t)
	commentId, err := ts.db.CreateComment(context.Background(), &appDb.CreateComment{
		PostId: ts.alicePostId, AuthorId: "uid-bob", Text: "bye",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	target := fmt.Sprintf("/posts/%d/delete_comment/%d", ts.alicePostId, commentId)

	w := ts.do(t, http.MethodPost, target, "uid-bob", nil)
	assertRedirect(t, w, fmt.Sprintf("/posts/%d/", ts.alicePostId))

	if w := ts.do(t, http.MethodPost, target, "uid-bob", nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", w.Code)
	}
}
