package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shamsaravaiah/LYSYN/internal/utils"
)

type APIError struct {
	Code  utils.Code `json:"code"`
	Error string     `json:"error"`
}

// writeError maps an error to the wire without leaking wrapped transport
// detail; only the safe message crosses the boundary.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:  ae.Code,
			Error: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:  utils.CodeInternal,
		Error: http.StatusText(status),
	})
}
