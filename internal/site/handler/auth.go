// Package handler exposes the HTTP handlers for the campus API. Handlers
// bind loose payloads, delegate to the biz services, and translate the
// three-way biz result (data, field errors, operational error) onto the
// unified response envelope.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edukit/campus/internal/pkg/httputils"
	"github.com/edukit/campus/internal/site/biz"
	"github.com/edukit/campus/internal/site/middleware"
	sessionopts "github.com/edukit/campus/pkg/options/session"
)

// AuthHandler handles authentication requests.
type AuthHandler struct {
	svc  *biz.AuthService
	opts *sessionopts.Options
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *biz.AuthService, opts *sessionopts.Options) *AuthHandler {
	return &AuthHandler{svc: svc, opts: opts}
}

// Login authenticates credentials and issues a bearer token. Credential
// failures share the validation failure shape so callers cannot tell a
// wrong password from an unknown account.
func (h *AuthHandler) Login(c *gin.Context) {
	payload, err := httputils.BindPayload(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}

	result, verrs, err := h.svc.Login(c.Request.Context(), payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}

	h.setSessionCookie(c, result.Token)
	httputils.WriteMessage(c, "Logged in.", result)
}

// Logout revokes the presented token and clears the navigation cookie.
// Revoking an already dead token still succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.BearerToken(c)); err != nil {
		httputils.WriteError(c, err)
		return
	}
	h.clearSessionCookie(c)
	httputils.WriteMessage(c, "Logged out.", nil)
}

// Refresh trades a live token for a fresh one, revoking the old.
func (h *AuthHandler) Refresh(c *gin.Context) {
	result, err := h.svc.Refresh(c.Request.Context(), middleware.BearerToken(c))
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	h.setSessionCookie(c, result.Token)
	httputils.WriteMessage(c, "Token refreshed.", result)
}

// WhoAmI returns the account behind the presented token.
func (h *AuthHandler) WhoAmI(c *gin.Context) {
	summary, err := h.svc.WhoAmI(c.Request.Context(), middleware.BearerToken(c))
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, summary)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, token, int(h.opts.TTL.Seconds()), "/", "", h.opts.CookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, "", -1, "/", "", h.opts.CookieSecure, true)
}
