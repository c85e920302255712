package httperr

import (
	"net/http"

	"travel-booking/internal/domain/booking"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Errors []booking.FieldError `json:"errors,omitempty"`
	Detail any                  `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	abort(c, err, resp)
}

// AbortWithValidation answers 400 with one entry per offending field.
func AbortWithValidation(c *gin.Context, err error, violations []booking.FieldError) {
	if err == nil {
		panic("AbortWithValidation: err cannot be nil")
	}

	resp := Response{Status: http.StatusBadRequest, Errors: violations}
	resp.Error.Message = "Validation failed"

	abort(c, err, resp)
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
