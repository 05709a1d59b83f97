package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prohmpiriya/charity-events/internal/dto"
	"github.com/prohmpiriya/charity-events/internal/service"
	"github.com/prohmpiriya/charity-events/pkg/response"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	catalog service.CatalogService
	errs    *ErrorReporter
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(catalog service.CatalogService, errs *ErrorReporter) *EventHandler {
	return &EventHandler{
		catalog: catalog,
		errs:    errs,
	}
}

// List handles GET /api/events - lists publicly listable events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.catalog.ListEvents(c.Request.Context())
	if err != nil {
		h.errs.StoreFailure(c, "list_events", err)
		return
	}

	c.JSON(http.StatusOK, response.List(dto.ToEventSummaryResponses(events), len(events)))
}

// Search handles GET /api/events/search - narrows listable events by date, city and category
func (h *EventHandler) Search(c *gin.Context) {
	var req dto.SearchEventsRequest
	// Query binding into plain strings cannot fail
	_ = c.ShouldBindQuery(&req)
	filter := req.ToFilter()

	events, err := h.catalog.SearchEvents(c.Request.Context(), filter)
	if err != nil {
		h.errs.StoreFailure(c, "search_events", err)
		return
	}

	c.JSON(http.StatusOK, response.Search(
		dto.ToEventSummaryResponses(events),
		len(events),
		response.NewFilters(filter.Date, filter.City, filter.Category),
	))
}

// GetByID handles GET /api/events/:id - retrieves one event with full detail
func (h *EventHandler) GetByID(c *gin.Context) {
	event, err := h.catalog.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound(response.MessageEventNotFound))
			return
		}
		h.errs.StoreFailure(c, "get_event", err)
		return
	}

	c.JSON(http.StatusOK, response.Success(dto.ToEventDetailResponse(event)))
}
