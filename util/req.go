package util

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/blogicum-app/blogicum-be/log"
	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Status  int
	Message string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

func BuildDbHTTPErr(err error) *HTTPError {
	log.Error.Println("database error occurred", err)
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "database error",
	}
}

func BuildNotFoundHTTPErr(entity string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusNotFound,
		Message: entity + " not found",
	}
}

func BuildBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}

var MalformedIdHTTPErr = HTTPError{
	Message: "id malformed",
	Status:  http.StatusBadRequest,
}

func ParseId(val string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, &MalformedIdHTTPErr
	}
	return id, nil
}

// ParsePage reads a 1-based ?page= query value, defaulting to 1.
func ParsePage(val string) int {
	if val == "" {
		return 1
	}
	page, err := strconv.Atoi(val)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

type HandlerOpts struct{}

type Handler func(c *gin.Context) (interface{}, *HTTPError)

// HandlerWrapper adapts a data-returning handler into a gin handler
// emitting the standard success/data envelope.
func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}

/*
	HandleHTTPErrorRes handles creating the appropriate response for the HTTP error.
	break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	c.JSON(err.Status, gin.H{
		"success": false,
		"message": err.Message,
	})
}
