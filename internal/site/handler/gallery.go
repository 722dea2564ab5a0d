package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edukit/campus/internal/pkg/httputils"
	"github.com/edukit/campus/internal/site/biz"
)

// GalleryHandler handles photo gallery requests.
type GalleryHandler struct {
	svc *biz.GalleryService
}

// NewGalleryHandler creates a new GalleryHandler.
func NewGalleryHandler(svc *biz.GalleryService) *GalleryHandler {
	return &GalleryHandler{svc: svc}
}

// Create validates and persists a new gallery.
func (h *GalleryHandler) Create(c *gin.Context) {
	payload, err := httputils.BindPayload(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}

	gallery, verrs, err := h.svc.Create(c.Request.Context(), payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Gallery created.", gallery)
}

// Update applies a sparse patch to an existing gallery.
func (h *GalleryHandler) Update(c *gin.Context) {
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

	gallery, verrs, err := h.svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Gallery updated.", gallery)
}

// Delete removes a gallery.
func (h *GalleryHandler) Delete(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteMessage(c, "Gallery deleted.", nil)
}

// Get returns a gallery by id.
func (h *GalleryHandler) Get(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	gallery, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, gallery)
}

// GetBySlug returns a gallery by slug. Used by the public site.
func (h *GalleryHandler) GetBySlug(c *gin.Context) {
	gallery, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, gallery)
}

// List returns galleries with pagination, newest event first.
func (h *GalleryHandler) List(c *gin.Context) {
	offset, limit := httputils.Pagination(c)
	list, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, list)
}
