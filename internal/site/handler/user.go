package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edukit/campus/internal/model"
	"github.com/edukit/campus/internal/pkg/httputils"
	"github.com/edukit/campus/internal/site/biz"
	apperrors "github.com/edukit/campus/pkg/errors"
	"github.com/edukit/campus/pkg/security/auth"
	"github.com/edukit/campus/pkg/validator"
)

// UserHandler handles administrative account requests.
type UserHandler struct {
	svc *biz.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *biz.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func userCreateRules() *validator.RuleSet {
	return validator.NewRuleSet().
		Field("username", validator.Required(), validator.MaxLen(64)).
		Field("password", validator.Required(), validator.MinLen(8)).
		Field("name", validator.MaxLen(255)).
		Field("email", validator.Email()).
		Field("role", validator.OneOf(model.RoleAdmin, model.RoleEditor))
}

// Create adds a new editor or administrator account.
func (h *UserHandler) Create(c *gin.Context) {
	payload, err := httputils.BindPayload(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs := userCreateRules().Apply(payload); verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}

	user := &model.User{
		Username: validator.StringOr(payload, "username", ""),
		Password: validator.StringOr(payload, "password", ""),
		Name:     validator.StringOr(payload, "name", ""),
		Email:    validator.NullableString(payload, "email"),
		Role:     validator.StringOr(payload, "role", model.RoleEditor),
		Status:   model.UserStatusEnabled,
	}
	if err := h.svc.Create(c.Request.Context(), user); err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteMessage(c, "User created.", user.Summary())
}

// List returns account summaries with pagination.
func (h *UserHandler) List(c *gin.Context) {
	offset, limit := httputils.Pagination(c)
	list, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}

	summaries := make([]*model.UserSummary, 0, len(list.Items))
	for _, u := range list.Items {
		summaries = append(summaries, u.Summary())
	}
	httputils.WriteData(c, gin.H{"total_count": list.TotalCount, "items": summaries})
}

// ChangePassword updates the authenticated account's own password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	principal := auth.PrincipalFromContext(c.Request.Context())
	if principal == nil {
		httputils.WriteError(c, apperrors.ErrUnauthorized)
		return
	}

	payload, err := httputils.BindPayload(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	rules := validator.NewRuleSet().
		Field("password", validator.Required(), validator.MinLen(8))
	if verrs := rules.Apply(payload); verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}

	password := validator.StringOr(payload, "password", "")
	if err := h.svc.ChangePassword(c.Request.Context(), principal.Username, password); err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteMessage(c, "Password changed.", nil)
}
