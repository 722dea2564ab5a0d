// Package middleware provides the gin middleware chain for the campus API:
// request identification, structured access logging, bearer authentication,
// role authorization, and the advisory navigation gate for the admin pages.
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edukit/campus/internal/site/biz"
	apperrors "github.com/edukit/campus/pkg/errors"
	"github.com/edukit/campus/pkg/response"
	"github.com/edukit/campus/pkg/security/auth"
)

// BearerToken extracts the opaque token from the Authorization header.
// Returns "" when the header is missing or not a Bearer scheme.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Bearer is the authoritative API guard. It resolves the presented token to
// a live session and account, and aborts with 401 otherwise. The resolved
// principal and raw token travel on the request context for downstream
// handlers and the authorization middleware.
func Bearer(authSvc *biz.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			abortWithErrno(c, apperrors.ErrUnauthorized)
			return
		}

		principal, err := authSvc.Principal(c.Request.Context(), token)
		if err != nil {
			var errno *apperrors.Errno
			if !errors.As(err, &errno) {
				errno = apperrors.ErrUnauthorized
			}
			abortWithErrno(c, errno)
			return
		}

		ctx := auth.ContextWithPrincipal(c.Request.Context(), principal)
		ctx = auth.ContextWithToken(ctx, token)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortWithErrno(c *gin.Context, errno *apperrors.Errno) {
	resp := response.Err(errno).WithRequestID(RequestIDFromContext(c))
	c.AbortWithStatusJSON(resp.HTTPStatus(), resp)
}
