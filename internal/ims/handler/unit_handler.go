package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/labforge/ims/internal/ims/service"
)

type UnitHandler struct {
	svc *service.UnitService
}

func NewUnitHandler(svc *service.UnitService) *UnitHandler {
	return &UnitHandler{svc: svc}
}

// Create POST /units
func (h *UnitHandler) Create(c *gin.Context) {
	var input service.CreateUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	unit, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err, "unit")
		return
	}
	Created(c, unit)
}

// List GET /units
func (h *UnitHandler) List(c *gin.Context) {
	units, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "unit")
		return
	}
	Success(c, gin.H{"items": units})
}

// Get GET /units/:id
func (h *UnitHandler) Get(c *gin.Context) {
	unit, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "unit")
		return
	}
	Success(c, unit)
}

// Delete DELETE /units/:id
func (h *UnitHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "unit")
		return
	}
	NoContent(c)
}
