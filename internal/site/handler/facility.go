package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edukit/campus/internal/pkg/httputils"
	"github.com/edukit/campus/internal/site/biz"
)

// FacilityHandler handles facility requests.
type FacilityHandler struct {
	svc *biz.FacilityService
}

// NewFacilityHandler creates a new FacilityHandler.
func NewFacilityHandler(svc *biz.FacilityService) *FacilityHandler {
	return &FacilityHandler{svc: svc}
}

// Create validates and persists a new facility.
func (h *FacilityHandler) Create(c *gin.Context) {
	payload, err := httputils.BindPayload(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}

	facility, verrs, err := h.svc.Create(c.Request.Context(), payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Facility created.", facility)
}

// Update applies a sparse patch to an existing facility.
func (h *FacilityHandler) Update(c *gin.Context) {
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

	facility, verrs, err := h.svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Facility updated.", facility)
}

// Delete removes a facility.
func (h *FacilityHandler) Delete(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteMessage(c, "Facility deleted.", nil)
}

// Get returns a facility by id.
func (h *FacilityHandler) Get(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	facility, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, facility)
}

// GetBySlug returns a facility by slug. Used by the public site.
func (h *FacilityHandler) GetBySlug(c *gin.Context) {
	facility, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, facility)
}

// List returns facilities with pagination.
func (h *FacilityHandler) List(c *gin.Context) {
	offset, limit := httputils.Pagination(c)
	list, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, list)
}
