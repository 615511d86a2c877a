package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/labforge/ims/internal/ims/service"
)

type ItemHandler struct {
	svc *service.ItemService
}

func NewItemHandler(svc *service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// Create POST /items
func (h *ItemHandler) Create(c *gin.Context) {
	var input service.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err, "item")
		return
	}
	Created(c, item)
}

// List GET /items?system_id=&catalogue_item_id=
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), queryPtr(c, "system_id"), queryPtr(c, "catalogue_item_id"))
	if err != nil {
		respondError(c, err, "item")
		return
	}
	Success(c, gin.H{"items": items})
}

// Get GET /items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "item")
		return
	}
	Success(c, item)
}

// Update PATCH /items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	var input service.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err, "item")
		return
	}
	Success(c, item)
}

// Delete DELETE /items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "item")
		return
	}
	NoContent(c)
}
