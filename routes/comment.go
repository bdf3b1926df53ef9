package routes

import (
	"net/http"
	"time"

	"github.com/blogicum-app/blogicum-be/app"
	"github.com/blogicum-app/blogicum-be/db"
	"github.com/blogicum-app/blogicum-be/middleware"
	"github.com/blogicum-app/blogicum-be/model"
	"github.com/blogicum-app/blogicum-be/util"
	"github.com/gin-gonic/gin"
)

type commentRoutes struct {
	db db.Database
}

func AddCommentRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier) {
	routes := commentRoutes{database}
	viewerAuth := middleware.Auth(database, verifier, &middleware.AuthConfig{SessionNotRequired: true})
	requireAuth := middleware.Auth(database, verifier, &middleware.AuthConfig{})

	group.POST("/add_comment/:id", requireAuth, routes.addComment)

	posts := group.Group("/posts")
	posts.GET("/:id/edit_comment/:cid", viewerAuth, routes.editCommentForm)
	posts.POST("/:id/edit_comment/:cid", viewerAuth, routes.editComment)
	posts.POST("/:id/delete_comment/:cid", viewerAuth, routes.deleteComment)
}

type commentForm struct {
	Text string `form:"text" binding:"required"`
}

func (cr *commentRoutes) addComment(c *gin.Context) {
	viewer := middleware.MustGetUser(c)
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		util.HandleHTTPErrorRes(c, httpErr)
		return
	}
	post, err := cr.db.GetPostById(c, id)
	if err != nil {
		util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
		return
	}
	// commenting requires a post the viewer could actually see
	if post == nil || !app.IsVisible(post, viewer, time.Now()) {
		util.HandleHTTPErrorRes(c, util.BuildNotFoundHTTPErr("post"))
		return
	}
	var form commentForm
	if err := c.ShouldBind(&form); err != nil {
		util.HandleHTTPErrorRes(c, util.BuildBindHTTPErr(err))
		return
	}
	if _, err := cr.db.CreateComment(c, &db.CreateComment{
		PostId:   post.Id,
		AuthorId: viewer.Id,
		Text:     util.XSSSanitize(form.Text),
	}); err != nil {
		util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
		return
	}
	c.Redirect(http.StatusSeeOther, postDetailPath(post.Id))
}

func (cr *commentRoutes) editCommentForm(c *gin.Context) {
	comment, ok := cr.loadCommentForOwner(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comment,
	})
}

func (cr *commentRoutes) editComment(c *gin.Context) {
	comment, ok := cr.loadCommentForOwner(c)
	if !ok {
		return
	}
	var form commentForm
	if err := c.ShouldBind(&form); err != nil {
		util.HandleHTTPErrorRes(c, util.BuildBindHTTPErr(err))
		return
	}
	if err := cr.db.UpdateComment(c, comment.Id, util.XSSSanitize(form.Text)); err != nil {
		util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
		return
	}
	c.Redirect(http.StatusSeeOther, postDetailPath(comment.PostId))
}

func (cr *commentRoutes) deleteComment(c *gin.Context) {
	comment, ok := cr.loadCommentForOwner(c)
	if !ok {
		return
	}
	if err := cr.db.DeleteComment(c, comment.Id); err != nil {
		util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
		return
	}
	c.Redirect(http.StatusSeeOther, postDetailPath(comment.PostId))
}

// loadCommentForOwner resolves the {id}/{cid} pair and enforces the
// ownership policy. Missing comment, or a cid that does not belong to
// the {id} post, is a 404; a policy failure redirects to the parent
// post's detail view.
func (cr *commentRoutes) loadCommentForOwner(c *gin.Context) (*model.Comment, bool) {
	postId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		util.HandleHTTPErrorRes(c, httpErr)
		return nil, false
	}
	commentId, httpErr := util.ParseId(c.Param("cid"))
	if httpErr != nil {
		util.HandleHTTPErrorRes(c, httpErr)
		return nil, false
	}
	comment, err := cr.db.GetCommentById(c, commentId)
	if err != nil {
		util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
		return nil, false
	}
	if comment == nil || comment.PostId != postId {
		util.HandleHTTPErrorRes(c, util.BuildNotFoundHTTPErr("comment"))
		return nil, false
	}
	if !app.CanMutate(comment.Author, middleware.GetUserMaybe(c)) {
		c.Redirect(http.StatusSeeOther, postDetailPath(comment.PostId))
		return nil, false
	}
	return comment, true
}
