package routes

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/blogicum-app/blogicum-be/app"
	"github.com/blogicum-app/blogicum-be/db"
	"github.com/blogicum-app/blogicum-be/middleware"
	"github.com/blogicum-app/blogicum-be/model"
	"github.com/blogicum-app/blogicum-be/services"
	"github.com/blogicum-app/blogicum-be/util"
	"github.com/gin-gonic/gin"
)

type postRoutes struct {
	db     db.Database
	images services.ImageStore
}

func AddPostRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier, images services.ImageStore) {
	routes := postRoutes{database, images}
	viewerAuth := middleware.Auth(database, verifier, &middleware.AuthConfig{SessionNotRequired: true})
	requireAuth := middleware.Auth(database, verifier, &middleware.AuthConfig{})

	group.GET("", viewerAuth, util.HandlerWrapper(routes.index, &util.HandlerOpts{}))

	posts := group.Group("/posts")
	posts.GET("/create", requireAuth, util.HandlerWrapper(routes.createPostForm, &util.HandlerOpts{}))
	posts.POST("/create", requireAuth, routes.createPost)
	posts.GET("/:id", viewerAuth, util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))
	posts.GET("/:id/edit", viewerAuth, routes.editPostForm)
	posts.POST("/:id/edit", viewerAuth, routes.editPost)
	posts.POST("/:id/delete", viewerAuth, routes.deletePost)
}

func postDetailPath(id int64) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func profilePath(username string) string {
	return fmt.Sprintf("/profile/%s/", username)
}

func (pr *postRoutes) index(c *gin.Context) (interface{}, *util.HTTPError) {
	feed, err := app.ListPublic(c, pr.db, time.Now(), util.ParsePage(c.Query("page")))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return feed, nil
}

func (pr *postRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	detail, err := app.GetPostDetail(c, pr.db, id, middleware.GetUserMaybe(c), time.Now())
	if errors.Is(err, app.ErrNotFound) {
		return nil, util.BuildNotFoundHTTPErr("post")
	}
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return detail, nil
}

// createPostForm supplies the data the (external) form render needs:
// the published categories and the known locations.
func (pr *postRoutes) createPostForm(c *gin.Context) (interface{}, *util.HTTPError) {
	categories, err := pr.db.GetCategories(c)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	locations, err := pr.db.GetLocations(c)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"categories": categories,
		"locations":  locations,
	}, nil
}

type postForm struct {
	Title      string `form:"title" binding:"required"`
	Text       string `form:"text" binding:"required"`
	PubDate    string `form:"pub_date" binding:"required"`
	Published  *bool  `form:"published"`
	CategoryId *int64 `form:"category_id"`
	LocationId *int64 `form:"location_id"`
}

// bindPostForm validates the shared create/edit form. A future
// pub_date is allowed on purpose: the post simply stays invisible to
// everyone but its author until it is due.
func bindPostForm(c *gin.Context) (*postForm, time.Time, *util.HTTPError) {
	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		return nil, time.Time{}, util.BuildBindHTTPErr(err)
	}
	pubDate, err := util.ParseTime(form.PubDate)
	if err != nil {
		return nil, time.Time{}, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "pub_date must be a RFC3339 timestamp or a YYYY-MM-DD date",
		}
	}
	return &form, pubDate, nil
}

func (form *postForm) published() bool {
	return form.Published == nil || *form.Published
}

func (pr *postRoutes) createPost(c *gin.Context) {
	viewer := middleware.MustGetUser(c)
	form, pubDate, httpErr := bindPostForm(c)
	if httpErr != nil {
		util.HandleHTTPErrorRes(c, httpErr)
		return
	}
	blobName, httpErr := pr.saveImageMaybe(c)
	if httpErr != nil {
		util.HandleHTTPErrorRes(c, httpErr)
		return
	}
	if _, err := pr.db.CreatePost(c, &db.CreatePost{
		AuthorId:      viewer.Id,
		Title:         form.Title,
		Text:          util.XSSSanitize(form.Text),
		PubDate:       pubDate,
		Published:     form.published(),
		CategoryId:    form.CategoryId,
		LocationId:    form.LocationId,
		ImageBlobName: blobName,
	}); err != nil {
		util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
		return
	}
	c.Redirect(http.StatusSeeOther, profilePath(viewer.Username))
}

func (pr *postRoutes) editPostForm(c *gin.Context) {
	post, ok := pr.loadPostForOwner(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    post,
	})
}

func (pr *postRoutes) editPost(c *gin.Context) {
	post, ok := pr.loadPostForOwner(c)
	if !ok {
		return
	}
	form, pubDate, httpErr := bindPostForm(c)
	if httpErr != nil {
		util.HandleHTTPErrorRes(c, httpErr)
		return
	}
	blobName, httpErr := pr.saveImageMaybe(c)
	if httpErr != nil {
		util.HandleHTTPErrorRes(c, httpErr)
		return
	}
	if blobName == "" {
		blobName = post.ImageBlobName
	}
	if err := pr.db.UpdatePost(c, post.Id, &db.UpdatePost{
		Title:         form.Title,
		Text:          util.XSSSanitize(form.Text),
		PubDate:       pubDate,
		Published:     form.published(),
		CategoryId:    form.CategoryId,
		LocationId:    form.LocationId,
		ImageBlobName: blobName,
	}); err != nil {
		util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
		return
	}
	c.Redirect(http.StatusSeeOther, postDetailPath(post.Id))
}

func (pr *postRoutes) deletePost(c *gin.Context) {
	post, ok := pr.loadPostForOwner(c)
	if !ok {
		return
	}
	if err := pr.db.DeletePost(c, post.Id); err != nil {
		util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// loadPostForOwner resolves the {id} post and enforces the ownership
// policy. A missing post is a 404; a policy failure is a silent
// redirect to the post's detail view, never an error page.
func (pr *postRoutes) loadPostForOwner(c *gin.Context) (*model.Post, bool) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		util.HandleHTTPErrorRes(c, httpErr)
		return nil, false
	}
	post, err := pr.db.GetPostById(c, id)
	if err != nil {
		util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
		return nil, false
	}
	if post == nil {
		util.HandleHTTPErrorRes(c, util.BuildNotFoundHTTPErr("post"))
		return nil, false
	}
	if !app.CanMutate(post.Author, middleware.GetUserMaybe(c)) {
		c.Redirect(http.StatusSeeOther, postDetailPath(post.Id))
		return nil, false
	}
	return post, true
}

func (pr *postRoutes) saveImageMaybe(c *gin.Context) (string, *util.HTTPError) {
	file, err := c.FormFile("image")
	if err != nil || pr.images == nil {
		return "", nil
	}
	src, err := file.Open()
	if err != nil {
		return "", &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "image upload unreadable",
		}
	}
	defer src.Close()
	blobName, err := pr.images.Save(c, path.Ext(file.Filename), src)
	if err != nil {
		return "", &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "image storage error",
		}
	}
	return blobName, nil
}
