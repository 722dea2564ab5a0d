// Package httputils provides shared helpers for writing the unified response
// envelope and for binding loosely typed request payloads.
package httputils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	apperrors "github.com/edukit/campus/pkg/errors"
	"github.com/edukit/campus/pkg/response"
	"github.com/edukit/campus/pkg/validator"
)

const requestIDKey = "request_id"

// WriteData writes a 200 envelope carrying data.
func WriteData(c *gin.Context, data any) {
	write(c, response.Success(data))
}

// WriteMessage writes a 200 envelope with a custom message and data.
func WriteMessage(c *gin.Context, message string, data any) {
	write(c, response.SuccessWithMessage(message, data))
}

// WriteInvalid writes the 422 envelope used for validation and credential
// failures: a field to messages map under "errors".
func WriteInvalid(c *gin.Context, verrs *validator.ValidationErrors) {
	write(c, response.Invalid("The given data was invalid.", verrs.ByField()))
}

// WriteError maps an error to the envelope. Unknown errors become 500 and
// are logged with their cause; Errno values keep their code and status.
func WriteError(c *gin.Context, err error) {
	var errno *apperrors.Errno
	if !errors.As(err, &errno) {
		logger.Global().WithCtx(c.Request.Context()).Errorw("Unclassified handler error", "error", err)
		errno = apperrors.ErrInternal
	}
	write(c, response.Err(errno))
}

func write(c *gin.Context, resp *response.Response) {
	if id := c.GetString(requestIDKey); id != "" {
		resp = resp.WithRequestID(id)
	}
	c.JSON(resp.HTTPStatus(), resp)
}

// BindPayload decodes the request body into a loose map so field presence
// survives binding. JSON bodies keep their decoded types; form bodies come
// through as strings.
func BindPayload(c *gin.Context) (map[string]any, error) {
	payload := map[string]any{}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return payload, nil
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperrors.ErrBadRequest.WithMessage("malformed request body")
	}
	return payload, nil
}

// PathID parses the numeric :id route parameter.
func PathID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrBadRequest.WithMessage("invalid id %q", raw)
	}
	return uint(id), nil
}

// Pagination reads offset/limit query parameters with sane bounds.
func Pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}

// NotFound is the fallback handler for unmatched API routes.
func NotFound(c *gin.Context) {
	write(c, response.Err(apperrors.ErrNotFound))
}
