package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/labforge/ims/internal/ims/service"
)

type SystemHandler struct {
	svc *service.SystemService
}

func NewSystemHandler(svc *service.SystemService) *SystemHandler {
	return &SystemHandler{svc: svc}
}

// Create POST /systems
func (h *SystemHandler) Create(c *gin.Context) {
	var input service.CreateSystemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	system, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err, "system")
		return
	}
	Created(c, system)
}

// List GET /systems?parent_id=
func (h *SystemHandler) List(c *gin.Context) {
	filtered, parentID := parentFilter(c)
	if filtered {
		systems, err := h.svc.ListByParent(c.Request.Context(), parentID)
		if err != nil {
			respondError(c, err, "system")
			return
		}
		Success(c, gin.H{"items": systems})
		return
	}
	systems, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "system")
		return
	}
	Success(c, gin.H{"items": systems})
}

// Get GET /systems/:id
func (h *SystemHandler) Get(c *gin.Context) {
	system, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "system")
		return
	}
	Success(c, system)
}

// GetBreadcrumbs GET /systems/:id/breadcrumbs
func (h *SystemHandler) GetBreadcrumbs(c *gin.Context) {
	breadcrumbs, err := h.svc.GetBreadcrumbs(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "systems")
		return
	}
	Success(c, breadcrumbs)
}

// Update PATCH /systems/:id
func (h *SystemHandler) Update(c *gin.Context) {
	var input service.UpdateSystemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	system, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err, "system")
		return
	}
	Success(c, system)
}

// Delete DELETE /systems/:id
func (h *SystemHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "system")
		return
	}
	NoContent(c)
}
