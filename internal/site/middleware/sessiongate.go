package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sessionopts "github.com/edukit/campus/pkg/options/session"
)

// SessionGate steers browser navigation around the admin pages by cookie
// presence alone. It never inspects the cookie's value: the API behind the
// pages is guarded by Bearer, so a forged cookie only reaches a shell that
// cannot load data.
//
// The login page is exempt from the gate, except that a visitor already
// carrying the session cookie is sent back to the admin landing page.
func SessionGate(opts *sessionopts.Options, landingPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := c.Cookie(opts.CookieName)
		hasCookie := err == nil

		if c.Request.URL.Path == opts.LoginPath {
			if hasCookie {
				c.Redirect(http.StatusFound, landingPath)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if !hasCookie {
			c.Redirect(http.StatusFound, opts.LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
