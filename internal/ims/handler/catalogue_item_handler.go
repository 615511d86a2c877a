package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/labforge/ims/internal/ims/service"
)

type CatalogueItemHandler struct {
	svc *service.CatalogueItemService
}

func NewCatalogueItemHandler(svc *service.CatalogueItemService) *CatalogueItemHandler {
	return &CatalogueItemHandler{svc: svc}
}

// Create POST /catalogue-items
func (h *CatalogueItemHandler) Create(c *gin.Context) {
	var input service.CreateCatalogueItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err, "catalogue item")
		return
	}
	Created(c, item)
}

// List GET /catalogue-items?catalogue_category_id=
func (h *CatalogueItemHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), queryPtr(c, "catalogue_category_id"))
	if err != nil {
		respondError(c, err, "catalogue item")
		return
	}
	Success(c, gin.H{"items": items})
}

// Get GET /catalogue-items/:id
func (h *CatalogueItemHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "catalogue item")
		return
	}
	Success(c, item)
}

// Update PATCH /catalogue-items/:id
func (h *CatalogueItemHandler) Update(c *gin.Context) {
	var input service.UpdateCatalogueItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err, "catalogue item")
		return
	}
	Success(c, item)
}

// Delete DELETE /catalogue-items/:id
func (h *CatalogueItemHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "catalogue item")
		return
	}
	NoContent(c)
}

// Export GET /catalogue-items/export?catalogue_category_id=
func (h *CatalogueItemHandler) Export(c *gin.Context) {
	f, err := h.svc.Export(c.Request.Context(), queryPtr(c, "catalogue_category_id"))
	if err != nil {
		respondError(c, err, "catalogue item")
		return
	}
	filename := fmt.Sprintf("catalogue-items-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "Failed to write spreadsheet: "+err.Error())
	}
}
