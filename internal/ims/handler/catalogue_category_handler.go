package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/labforge/ims/internal/ims/service"
)

type CatalogueCategoryHandler struct {
	svc         *service.CatalogueCategoryService
	propertySvc *service.CatalogueCategoryPropertyService
}

func NewCatalogueCategoryHandler(
	svc *service.CatalogueCategoryService,
	propertySvc *service.CatalogueCategoryPropertyService,
) *CatalogueCategoryHandler {
	return &CatalogueCategoryHandler{svc: svc, propertySvc: propertySvc}
}

// Create POST /catalogue-categories
func (h *CatalogueCategoryHandler) Create(c *gin.Context) {
	var input service.CreateCatalogueCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	category, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err, "catalogue category")
		return
	}
	Created(c, category)
}

// List GET /catalogue-categories?parent_id=
func (h *CatalogueCategoryHandler) List(c *gin.Context) {
	filtered, parentID := parentFilter(c)
	if filtered {
		categories, err := h.svc.ListByParent(c.Request.Context(), parentID)
		if err != nil {
			respondError(c, err, "catalogue category")
			return
		}
		Success(c, gin.H{"items": categories})
		return
	}
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "catalogue category")
		return
	}
	Success(c, gin.H{"items": categories})
}

// Get GET /catalogue-categories/:id
func (h *CatalogueCategoryHandler) Get(c *gin.Context) {
	category, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "catalogue category")
		return
	}
	Success(c, category)
}

// GetBreadcrumbs GET /catalogue-categories/:id/breadcrumbs
func (h *CatalogueCategoryHandler) GetBreadcrumbs(c *gin.Context) {
	breadcrumbs, err := h.svc.GetBreadcrumbs(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "catalogue_categories")
		return
	}
	Success(c, breadcrumbs)
}

// Update PATCH /catalogue-categories/:id
func (h *CatalogueCategoryHandler) Update(c *gin.Context) {
	var input service.UpdateCatalogueCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	category, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err, "catalogue category")
		return
	}
	Success(c, category)
}

// Delete DELETE /catalogue-categories/:id
func (h *CatalogueCategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "catalogue category")
		return
	}
	NoContent(c)
}

// CreateProperty POST /catalogue-categories/:id/properties
func (h *CatalogueCategoryHandler) CreateProperty(c *gin.Context) {
	var input service.CreateCataloguePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	property, err := h.propertySvc.Create(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err, "catalogue category")
		return
	}
	Created(c, property)
}

// UpdateProperty PATCH /catalogue-categories/:id/properties/:propertyId
func (h *CatalogueCategoryHandler) UpdateProperty(c *gin.Context) {
	var input service.UpdateCataloguePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		UnprocessableEntity(c, "Invalid request body: "+err.Error())
		return
	}
	property, err := h.propertySvc.Update(c.Request.Context(), c.Param("id"), c.Param("propertyId"), &input)
	if err != nil {
		respondError(c, err, "catalogue category", "property")
		return
	}
	Success(c, property)
}
