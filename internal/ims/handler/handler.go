package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers bundles one handler per API resource.
type Handlers struct {
	CatalogueCategory *CatalogueCategoryHandler
	CatalogueItem     *CatalogueItemHandler
	Item              *ItemHandler
	System            *SystemHandler
	Manufacturer      *ManufacturerHandler
	Unit              *UnitHandler
	UsageStatus       *UsageStatusHandler
	Health            *HealthHandler
}

// NewHandlers creates the handler set. rdb may be nil when redis is not
// configured; the health endpoint then skips the redis ping.
func NewHandlers(svc *service.Services, db *gorm.DB, rdb *redis.Client) *Handlers {
	return &Handlers{
		CatalogueCategory: NewCatalogueCategoryHandler(svc.CatalogueCategory, svc.CatalogueCategoryProperty),
		CatalogueItem:     NewCatalogueItemHandler(svc.CatalogueItem),
		Item:              NewItemHandler(svc.Item),
		System:            NewSystemHandler(svc.System),
		Manufacturer:      NewManufacturerHandler(svc.Manufacturer),
		Unit:              NewUnitHandler(svc.Unit),
		UsageStatus:       NewUsageStatusHandler(svc.UsageStatus),
		Health:            NewHealthHandler(db, rdb),
	}
}

// Response is the shared envelope for all JSON responses.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// NoContent writes a 204 response with an empty body.
func NoContent(c *gin.Context) {
	c.Status(204)
}

// Error writes an error response. The business code encodes the HTTP
// status in its leading three digits.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func UnprocessableEntity(c *gin.Context, message string) {
	Error(c, 42200, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// respondError maps a typed service error onto an HTTP response.
// primary names the entities the route's path identifies: a missing
// record of one of those kinds is a 404, while a missing record
// referenced from the request body is a 422.
func respondError(c *gin.Context, err error, primary ...string) {
	switch e := err.(type) {
	case *apperr.MissingRecordError:
		if containsLabel(primary, e.Entity) {
			NotFound(c, e.Detail)
		} else {
			UnprocessableEntity(c, e.Detail)
		}
	case *apperr.InvalidIDError:
		UnprocessableEntity(c, e.Detail)
	case *apperr.DuplicateRecordError:
		Conflict(c, e.Detail)
	case *apperr.LeafCatalogueCategoryError:
		Conflict(c, e.Detail)
	case *apperr.NonLeafCatalogueCategoryError:
		Conflict(c, e.Detail)
	case *apperr.ChildElementsExistError:
		Conflict(c, e.Detail)
	case *apperr.PartOfCatalogueItemError:
		Conflict(c, e.Detail)
	case *apperr.PartOfCatalogueCategoryError:
		Conflict(c, e.Detail)
	case *apperr.PartOfItemError:
		Conflict(c, e.Detail)
	case *apperr.DuplicatePropertyNameError:
		UnprocessableEntity(c, e.Detail)
	case *apperr.InvalidActionError:
		UnprocessableEntity(c, e.Detail)
	case *apperr.InvalidPropertyTypeError:
		UnprocessableEntity(c, e.Detail)
	case *apperr.MissingMandatoryPropertyError:
		UnprocessableEntity(c, e.Detail)
	case *apperr.DatabaseIntegrityError:
		InternalError(c, e.Detail)
	default:
		InternalError(c, err.Error())
	}
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// parentFilter reads an optional parent_id query parameter. The literal
// "null" selects root entities; absence means no filtering.
func parentFilter(c *gin.Context) (filtered bool, parentID *string) {
	value, ok := c.GetQuery("parent_id")
	if !ok {
		return false, nil
	}
	if value == "null" {
		return true, nil
	}
	return true, &value
}

func queryPtr(c *gin.Context, name string) *string {
	if value, ok := c.GetQuery(name); ok {
		return &value
	}
	return nil
}
