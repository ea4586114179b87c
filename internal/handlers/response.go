package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform body of every response except 204: code mirrors
// the HTTP status, errors is non-null exactly when data is null.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Errors  interface{} `json:"errors"`
}

// FieldErrors maps a field name to its validation messages.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusConflict:            "Conflict",
	http.StatusInternalServerError: "Internal Server Error",
}

// StatusMessage returns the fixed vocabulary for known failure codes and a
// generic "Error" for anything unmapped.
func StatusMessage(code int) string {
	if msg, ok := statusMessages[code]; ok {
		return msg
	}
	return "Error"
}

func OK(c *gin.Context, data interface{}) {
	OKWithMessage(c, data, "OK")
}

func OKWithMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Envelope{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
		Errors:  nil,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Code:    http.StatusCreated,
		Message: "Creado",
		Data:    data,
		Errors:  nil,
	})
}

// NoContent is the sole unenveloped response: 204 with an empty body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Fail(c *gin.Context, status int, errs interface{}) {
	c.JSON(status, Envelope{
		Code:    status,
		Message: StatusMessage(status),
		Data:    nil,
		Errors:  errs,
	})
}

func FailDetail(c *gin.Context, status int, detail string) {
	Fail(c, status, gin.H{"detail": detail})
}

func BadRequest(c *gin.Context, fields FieldErrors) {
	Fail(c, http.StatusBadRequest, fields)
}

func NotFound(c *gin.Context) {
	FailDetail(c, http.StatusNotFound, "Not found.")
}

func InternalError(c *gin.Context) {
	FailDetail(c, http.StatusInternalServerError, "A server error occurred.")
}
