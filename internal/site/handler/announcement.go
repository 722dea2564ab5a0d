package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edukit/campus/internal/pkg/httputils"
	"github.com/edukit/campus/internal/site/biz"
)

// AnnouncementHandler handles announcement requests.
type AnnouncementHandler struct {
	svc *biz.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(svc *biz.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc}
}

// Create validates and persists a new announcement.
func (h *AnnouncementHandler) Create(c *gin.Context) {
	payload, err := httputils.BindPayload(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}

	announcement, verrs, err := h.svc.Create(c.Request.Context(), payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Announcement created.", announcement)
}

// Update applies a sparse patch to an existing announcement.
func (h *AnnouncementHandler) Update(c *gin.Context) {
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

	announcement, verrs, err := h.svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Announcement updated.", announcement)
}

// Delete removes an announcement.
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteMessage(c, "Announcement deleted.", nil)
}

// Get returns an announcement by id.
func (h *AnnouncementHandler) Get(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	announcement, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, announcement)
}

// List returns announcements with pagination.
func (h *AnnouncementHandler) List(c *gin.Context) {
	offset, limit := httputils.Pagination(c)
	list, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, list)
}

// ListCurrent returns announcements that are published and not expired.
// Used by the public site.
func (h *AnnouncementHandler) ListCurrent(c *gin.Context) {
	items, err := h.svc.ListCurrent(c.Request.Context())
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, items)
}
