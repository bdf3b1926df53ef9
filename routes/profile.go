package routes

import (
	"errors"
	"net/http"

	"github.com/blogicum-app/blogicum-be/app"
	appDb "github.com/blogicum-app/blogicum-be/db"
	"github.com/blogicum-app/blogicum-be/middleware"
	"github.com/blogicum-app/blogicum-be/model"
	"github.com/blogicum-app/blogicum-be/util"
	"github.com/gin-gonic/gin"
)

type profileRoutes struct {
	db appDb.Database
}

func AddProfileRoutes(group *gin.RouterGroup, database appDb.Database, verifier middleware.TokenVerifier) {
	routes := profileRoutes{database}
	requireAuth := middleware.Auth(database, verifier, &middleware.AuthConfig{})
	registrationAuth := middleware.Auth(database, verifier, &middleware.AuthConfig{
		ProfileNotRequired: true,
	})

	profile := group.Group("/profile")
	profile.GET("/edit", requireAuth, util.HandlerWrapper(routes.editProfileForm, &util.HandlerOpts{}))
	profile.POST("/edit", requireAuth, routes.editProfile)
	profile.GET("/:username", util.HandlerWrapper(routes.getProfile, &util.HandlerOpts{}))

	group.PUT("/users", registrationAuth, util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
}

// getProfile is the author's own page: every post they wrote,
// published or not, newest first.
func (ur *profileRoutes) getProfile(c *gin.Context) (interface{}, *util.HTTPError) {
	username := c.Param("username")
	profile, err := ur.db.GetUserByUsername(c, username)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if profile == nil {
		return nil, util.BuildNotFoundHTTPErr("user")
	}
	feed, err := app.ListByAuthor(c, ur.db, username, util.ParsePage(c.Query("page")))
	if errors.Is(err, app.ErrNotFound) {
		return nil, util.BuildNotFoundHTTPErr("user")
	}
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"profile": profile,
		"feed":    feed,
	}, nil
}

func (ur *profileRoutes) editProfileForm(c *gin.Context) (interface{}, *util.HTTPError) {
	return middleware.MustGetUser(c), nil
}

type editProfileForm struct {
	Email     string `form:"email" binding:"required,email"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
}

func (ur *profileRoutes) editProfile(c *gin.Context) {
	viewer := middleware.MustGetUser(c)
	var form editProfileForm
	if err := c.ShouldBind(&form); err != nil {
		util.HandleHTTPErrorRes(c, util.BuildBindHTTPErr(err))
		return
	}
	if err := ur.db.UpdateUser(c, viewer.Id, &appDb.UpdateUser{
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}); err != nil {
		util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
		return
	}
	c.Redirect(http.StatusSeeOther, profilePath(viewer.Username))
}

type createUserReq struct {
	Username  string `form:"username" json:"username" binding:"required"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	FirstName string `form:"first_name" json:"firstName"`
	LastName  string `form:"last_name" json:"lastName"`
}

// createUser finishes registration: the firebase account exists, the
// local profile row does not yet.
func (ur *profileRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.ShouldBind(&req); err != nil {
		return nil, util.BuildBindHTTPErr(err)
	}
	if err := ur.db.CreateUser(c, &model.User{
		Id:        middleware.GetToken(c).UID,
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}); err != nil {
		if appDb.IsDupKeyErr(err) {
			return nil, &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: "username already taken",
			}
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"username": req.Username,
	}, nil
}
