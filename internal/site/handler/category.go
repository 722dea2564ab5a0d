package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edukit/campus/internal/pkg/httputils"
	"github.com/edukit/campus/internal/site/biz"
)

// CategoryHandler handles post category requests.
type CategoryHandler struct {
	svc *biz.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc *biz.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// Create validates and persists a new category.
func (h *CategoryHandler) Create(c *gin.Context) {
	payload, err := httputils.BindPayload(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}

	category, verrs, err := h.svc.Create(c.Request.Context(), payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Category created.", category)
}

// Update applies a sparse patch to an existing category.
func (h *CategoryHandler) Update(c *gin.Context) {
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

	category, verrs, err := h.svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Category updated.", category)
}

// Delete removes a category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteMessage(c, "Category deleted.", nil)
}

// Get returns a category by id.
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	category, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, category)
}

// List returns all categories with pagination.
func (h *CategoryHandler) List(c *gin.Context) {
	offset, limit := httputils.Pagination(c)
	list, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, list)
}
