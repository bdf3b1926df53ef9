package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	appDb "github.com/blogicum-app/blogicum-be/db"
	"github.com/blogicum-app/blogicum-be/db/dbtest"
	"github.com/blogicum-app/blogicum-be/model"
	"github.com/gin-gonic/gin"
)

// fakeVerifier treats any token of the form "uid-*" as a valid session
// for that uid.
type fakeVerifier struct{}

func (fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if strings.HasPrefix(idToken, "uid-") {
		return &auth.Token{UID: idToken}, nil
	}
	return nil, errors.New("invalid token")
}

// Handlers evaluate visibility against the wall clock, so fixture
// publication dates hang off it too.
var testNow = time.Now()

type testServer struct {
	engine *gin.Engine
	db     *dbtest.MemDB

	travelId    int64
	alicePostId int64 // public post by alice in travel
	hiddenId    int64 // unpublished post by bob
	futureId    int64 // future-dated post by bob
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	memDB := dbtest.New()
	engine := gin.New()
	AddPostRoutes(&engine.RouterGroup, memDB, fakeVerifier{}, nil)
	AddCommentRoutes(&engine.RouterGroup, memDB, fakeVerifier{})
	AddProfileRoutes(&engine.RouterGroup, memDB, fakeVerifier{})
	AddCategoryRoutes(&engine.RouterGroup, memDB)
	AddHealthCheckRoutes(&engine.RouterGroup)

	ts := &testServer{engine: engine, db: memDB}
	ctx := context.Background()

	for _, user := range []*model.User{
		{Id: "uid-alice", Username: "alice", Email: "alice@example.com"},
		{Id: "uid-bob", Username: "bob", Email: "bob@example.com"},
	} {
		if err := memDB.CreateUser(ctx, user); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	var err error
	if ts.travelId, err = memDB.CreateCategory(ctx, &appDb.CreateCategory{
		Title: "Travel", Slug: "travel", Published: true,
	}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if ts.alicePostId, err = memDB.CreatePost(ctx, &appDb.CreatePost{
		AuthorId: "uid-alice", Title: "alice in travel", Text: "text",
		PubDate: testNow.Add(-time.Hour), Published: true, CategoryId: &ts.travelId,
	}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if ts.hiddenId, err = memDB.CreatePost(ctx, &appDb.CreatePost{
		AuthorId: "uid-bob", Title: "bob draft", Text: "text",
		PubDate: testNow.Add(-time.Hour), Published: false,
	}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if ts.futureId, err = memDB.CreatePost(ctx, &appDb.CreatePost{
		AuthorId: "uid-bob", Title: "bob tomorrow", Text: "text",
		PubDate: testNow.Add(24 * time.Hour), Published: true,
	}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	return ts
}

// do performs a request. A non-empty uid is sent as a Bearer token the
// fake verifier accepts.
func (ts *testServer) do(t *testing.T, method, target, uid string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+uid)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusSeeOther, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("redirect location = %q, want %q", got, location)
	}
}
