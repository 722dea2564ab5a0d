package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edukit/campus/internal/pkg/httputils"
	"github.com/edukit/campus/internal/site/biz"
)

// ActivityHandler handles extracurricular activity requests.
type ActivityHandler struct {
	svc *biz.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(svc *biz.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// Create validates and persists a new activity.
func (h *ActivityHandler) Create(c *gin.Context) {
	payload, err := httputils.BindPayload(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}

	activity, verrs, err := h.svc.Create(c.Request.Context(), payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Activity created.", activity)
}

// Update applies a sparse patch to an existing activity.
func (h *ActivityHandler) Update(c *gin.Context) {
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

	activity, verrs, err := h.svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Activity updated.", activity)
}

// Delete removes an activity.
func (h *ActivityHandler) Delete(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteMessage(c, "Activity deleted.", nil)
}

// Get returns an activity by id.
func (h *ActivityHandler) Get(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	activity, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, activity)
}

// GetBySlug returns an activity by slug. Used by the public site.
func (h *ActivityHandler) GetBySlug(c *gin.Context) {
	activity, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, activity)
}

// List returns activities with pagination.
func (h *ActivityHandler) List(c *gin.Context) {
	offset, limit := httputils.Pagination(c)
	list, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, list)
}
