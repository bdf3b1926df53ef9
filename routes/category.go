package routes

import (
	"errors"
	"time"

	"github.com/blogicum-app/blogicum-be/app"
	"github.com/blogicum-app/blogicum-be/db"
	"github.com/blogicum-app/blogicum-be/util"
	"github.com/gin-gonic/gin"
)

type categoryRoutes struct {
	db db.Database
}

func AddCategoryRoutes(group *gin.RouterGroup, database db.Database) {
	routes := categoryRoutes{database}
	group.GET("/category/:slug", util.HandlerWrapper(routes.getCategoryFeed, &util.HandlerOpts{}))
}

func (cr *categoryRoutes) getCategoryFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	slug := c.Param("slug")
	feed, err := app.ListByCategory(c, cr.db, slug, time.Now(), util.ParsePage(c.Query("page")))
	if errors.Is(err, app.ErrNotFound) {
		return nil, util.BuildNotFoundHTTPErr("category")
	}
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	category, err := cr.db.GetCategoryBySlug(c, slug)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"category": category,
		"feed":     feed,
	}, nil
}
