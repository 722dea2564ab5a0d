package middleware

import (
	apperrors "github.com/edukit/campus/pkg/errors"
	"github.com/edukit/campus/pkg/security/auth"
	"github.com/edukit/campus/pkg/security/authz"

	"github.com/gin-gonic/gin"
)

// Authorize enforces the RBAC policy against the authenticated principal's
// role. It must run after Bearer so the principal is on the context.
func Authorize(authorizer *authz.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := auth.PrincipalFromContext(c.Request.Context())
		if principal == nil {
			abortWithErrno(c, apperrors.ErrUnauthorized)
			return
		}

		allowed, err := authorizer.Authorize("role:"+principal.Role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			abortWithErrno(c, apperrors.ErrInternal.WithCause(err))
			return
		}
		if !allowed {
			abortWithErrno(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
