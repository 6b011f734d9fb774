package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
)

// Envelope is the common response contract. Success responses carry Data,
// error responses carry Error; typed rejections carry both so the client
// keeps the state it needs to resolve them.
type Envelope struct {
	Data  interface{}      `json:"data,omitempty"`
	Error *appErrors.Error `json:"error,omitempty"`
}

// JSON sends a success payload.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// Reject renders a typed business rejection together with the state the
// client needs to resolve it.
func Reject(c *gin.Context, err *appErrors.Error, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(err.Status, Envelope{Data: data, Error: err})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
