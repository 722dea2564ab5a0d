package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edukit/campus/internal/pkg/httputils"
	"github.com/edukit/campus/internal/site/biz"
)

// AchievementHandler handles achievement requests.
type AchievementHandler struct {
	svc *biz.AchievementService
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(svc *biz.AchievementService) *AchievementHandler {
	return &AchievementHandler{svc: svc}
}

// Create validates and persists a new achievement.
func (h *AchievementHandler) Create(c *gin.Context) {
	payload, err := httputils.BindPayload(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}

	achievement, verrs, err := h.svc.Create(c.Request.Context(), payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Achievement created.", achievement)
}

// Update applies a sparse patch to an existing achievement.
func (h *AchievementHandler) Update(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	payload, err := httputils.BindPayload(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}

	achievement, verrs, err := h.svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Achievement updated.", achievement)
}

// Delete removes an achievement.
func (h *AchievementHandler) Delete(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteMessage(c, "Achievement deleted.", nil)
}

// Get returns an achievement by id.
func (h *AchievementHandler) Get(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	achievement, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, achievement)
}

// List returns achievements with pagination, most recent award first.
func (h *AchievementHandler) List(c *gin.Context) {
	offset, limit := httputils.Pagination(c)
	list, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, list)
}
