package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
)

type profileEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Profile struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"profile"`
		Feed struct {
			Posts []struct {
				Title     string `json:"title"`
				Published bool   `json:"published"`
			} `json:"posts"`
			Total int64 `json:"total"`
		} `json:"feed"`
	} `json:"data"`
}

func TestProfileShowsAllOwnPosts(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/profile/bob", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var envelope profileEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Profile.Username != "bob" {
		t.Errorf("profile username = %q", envelope.Data.Profile.Username)
	}
	// the draft and the future-dated post both appear
	if envelope.Data.Feed.Total != 2 {
		t.Errorf("total = %d, want 2", envelope.Data.Feed.Total)
	}

	if w := ts.do(t, http.MethodGet, "/profile/nobody", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown user: status = %d, want 404", w.Code)
	}
}

func TestEditProfile(t *testing.T) {
	ts := newTestServer(t)

	if w := ts.do(t, http.MethodPost, "/profile/edit", "", url.Values{"email": {"x@example.com"}}); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous edit: status = %d, want 401", w.Code)
	}

	w := ts.do(t, http.MethodPost, "/profile/edit", "uid-alice", url.Values{
		"email":      {"new@example.com"},
		"first_name": {"Alice"},
		"last_name":  {"Liddell"},
	})
	assertRedirect(t, w, "/profile/alice/")

	user, err := ts.db.GetUser(context.Background(), "uid-alice")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Email != "new@example.com" || user.FirstName != "Alice" {
		t.Errorf("profile not updated: %+v", user)
	}

	// malformed email is a validation error
	if w := ts.do(t, http.MethodPost, "/profile/edit", "uid-alice", url.Values{"email": {"not-an-email"}}); w.Code != http.StatusBadRequest {
		t.Errorf("bad email: status = %d, want 400", w.Code)
	}
}

func TestCreateUser(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPut, "/users", "uid-carol", url.Values{
		"username": {"carol"},
		"email":    {"carol@example.com"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}
	user, err := ts.db.GetUser(context.Background(), "uid-carol")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("profile row not created: %+v", user)
	}

	// duplicate username surfaces as a validation error, not a 500
	w = ts.do(t, http.MethodPut, "/users", "uid-dave", url.Values{
		"username": {"carol"},
		"email":    {"dave@example.com"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate username: status = %d, want 400", w.Code)
	}
}

func TestCategoryFeed(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/category/travel", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	if w := ts.do(t, http.MethodGet, "/category/unknown-slug", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown slug: status = %d, want 404", w.Code)
	}
}
