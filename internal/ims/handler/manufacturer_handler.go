package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/labforge/ims/internal/ims/service"
)

type ManufacturerHandler struct {
	svc *service.ManufacturerService
}

func NewManufacturerHandler(svc *service.ManufacturerService) *ManufacturerHandler {
	return &ManufacturerHandler{svc: svc}
}

// Create POST /manufacturers
func (h *ManufacturerHandler) Create(c *gin.Context) {
	var input service.CreateManufacturerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	manufacturer, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err, "manufacturer")
		return
	}
	Created(c, manufacturer)
}

// List GET /manufacturers
func (h *ManufacturerHandler) List(c *gin.Context) {
	manufacturers, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "manufacturer")
		return
	}
	Success(c, gin.H{"items": manufacturers})
}

// Get GET /manufacturers/:id
func (h *ManufacturerHandler) Get(c *gin.Context) {
	manufacturer, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "manufacturer")
		return
	}
	Success(c, manufacturer)
}

// Update PATCH /manufacturers/:id
func (h *ManufacturerHandler) Update(c *gin.Context) {
	var input service.UpdateManufacturerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	manufacturer, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err, "manufacturer")
		return
	}
	Success(c, manufacturer)
}

// Delete DELETE /manufacturers/:id
func (h *ManufacturerHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "manufacturer")
		return
	}
	NoContent(c)
}
