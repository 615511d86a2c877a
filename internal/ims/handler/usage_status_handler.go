package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/labforge/ims/internal/ims/service"
)

type UsageStatusHandler struct {
	svc *service.UsageStatusService
}

func NewUsageStatusHandler(svc *service.UsageStatusService) *UsageStatusHandler {
	return &UsageStatusHandler{svc: svc}
}

// Create POST /usage-statuses
func (h *UsageStatusHandler) Create(c *gin.Context) {
	var input service.CreateUsageStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	status, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err, "usage status")
		return
	}
	Created(c, status)
}

// List GET /usage-statuses
func (h *UsageStatusHandler) List(c *gin.Context) {
	statuses, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "usage status")
		return
	}
	Success(c, gin.H{"items": statuses})
}

// Get GET /usage-statuses/:id
func (h *UsageStatusHandler) Get(c *gin.Context) {
	status, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "usage status")
		return
	}
	Success(c, status)
}

// Delete DELETE /usage-statuses/:id
func (h *UsageStatusHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "usage status")
		return
	}
	NoContent(c)
}
