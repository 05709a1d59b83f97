package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prohmpiriya/charity-events/internal/dto"
	"github.com/prohmpiriya/charity-events/internal/service"
	"github.com/prohmpiriya/charity-events/pkg/response"
)

// CatalogHandler serves the lookup lists used to build search forms
type CatalogHandler struct {
	catalog service.CatalogService
	errs    *ErrorReporter
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog service.CatalogService, errs *ErrorReporter) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		errs:    errs,
	}
}

// Categories handles GET /api/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.errs.StoreFailure(c, "list_categories", err)
		return
	}

	c.JSON(http.StatusOK, response.List(dto.ToCategoryResponses(categories), len(categories)))
}

// Cities handles GET /api/cities - data is a plain list of city names
func (h *CatalogHandler) Cities(c *gin.Context) {
	cities, err := h.catalog.ListCities(c.Request.Context())
	if err != nil {
		h.errs.StoreFailure(c, "list_cities", err)
		return
	}
	if cities == nil {
		cities = []string{}
	}

	c.JSON(http.StatusOK, response.List(cities, len(cities)))
}
