package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
	"github.com/noah-isme/sma-vote-api/pkg/response"
)

// bindJSON decodes an optional JSON body into dst. An empty body leaves dst zeroed so the
// service reports the missing fields.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
	}
	return nil
}

// allowMethods writes 405 and returns false unless the request uses one of methods.
func allowMethods(c *gin.Context, methods ...string) bool {
	for _, m := range methods {
		if c.Request.Method == m {
			return true
		}
	}
	response.Error(c, appErrors.ErrMethodNotAllowed)
	return false
}
