package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edukit/campus/internal/model"
	"github.com/edukit/campus/internal/pkg/httputils"
	"github.com/edukit/campus/internal/site/biz"
	"github.com/edukit/campus/internal/site/store"
)

// PostHandler handles post requests.
type PostHandler struct {
	svc *biz.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *biz.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// Create validates and persists a new post.
func (h *PostHandler) Create(c *gin.Context) {
	payload, err := httputils.BindPayload(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}

	post, verrs, err := h.svc.Create(c.Request.Context(), payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Post created.", post)
}

// Update applies a sparse patch to an existing post.
func (h *PostHandler) Update(c *gin.Context) {
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

	post, verrs, err := h.svc.Update(c.Request.Context(), id, payload)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if verrs != nil {
		httputils.WriteInvalid(c, verrs)
		return
	}
	httputils.WriteMessage(c, "Post updated.", post)
}

// Delete removes a post.
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteMessage(c, "Post deleted.", nil)
}

// Get returns a post by id.
func (h *PostHandler) Get(c *gin.Context) {
	id, err := httputils.PathID(c)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	post, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, post)
}

// GetBySlug returns a post by slug. Used by the public site.
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, post)
}

// List returns posts with optional status, type, and category filters.
func (h *PostHandler) List(c *gin.Context) {
	offset, limit := httputils.Pagination(c)
	opts := store.ListPostOptions{
		Offset:      offset,
		Limit:       limit,
		Status:      c.Query("status"),
		ContentType: c.Query("content_type"),
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			opts.CategoryID = uint(id)
		}
	}

	list, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, list)
}

// ListPublished is the public listing: published posts only.
func (h *PostHandler) ListPublished(c *gin.Context) {
	offset, limit := httputils.Pagination(c)
	list, err := h.svc.List(c.Request.Context(), store.ListPostOptions{
		Offset:      offset,
		Limit:       limit,
		Status:      model.PostStatusPublished,
		ContentType: c.Query("content_type"),
	})
	if err != nil {
		httputils.WriteError(c, err)
		return
	}
	httputils.WriteData(c, list)
}
