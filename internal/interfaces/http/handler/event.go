package handler

import (
	"time"

	appcatalog "github.com/citytickets/backend/internal/application/catalog"
	"github.com/citytickets/backend/internal/domain/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventHandler serves the event catalog
type EventHandler struct {
	BaseHandler
	events *appcatalog.EventService
}

// NewEventHandler creates an EventHandler
func NewEventHandler(events *appcatalog.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// RegisterPublicRoutes registers catalog browsing routes
func (h *EventHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.GET("", h.List)
		events.GET("/categories", h.Categories)
		events.GET("/:id", h.Get)
	}
	rg.GET("/venues", h.ListVenues)
}

// RegisterAdminRoutes registers catalog management routes; the group must
// already require a staff session
func (h *EventHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.POST("", h.Create)
		events.PUT("/:id", h.Update)
		events.POST("/:id/cancel", h.Cancel)
		events.DELETE("/:id", h.Remove)
	}
	rg.POST("/venues", h.CreateVenue)
}

// EventResponse is the public view of an event
type EventResponse struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Organizer       string          `json:"organizer"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	StartsAt        time.Time       `json:"starts_at"`
	AgeLimit        int             `json:"age_limit"`
	Category        string          `json:"category"`
	VenueID         *uuid.UUID      `json:"venue_id,omitempty"`
	Cancelled       bool            `json:"cancelled"`
}

func toEventResponse(e *catalog.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Organizer:       e.Organizer,
		Price:           e.Price,
		DurationMinutes: e.DurationMinutes,
		StartsAt:        e.StartsAt,
		AgeLimit:        e.AgeLimit,
		Category:        e.Category.String(),
		VenueID:         e.VenueID,
		Cancelled:       e.Cancelled,
	}
}

func toEventResponses(events []catalog.Event) []EventResponse {
	result := make([]EventResponse, len(events))
	for i := range events {
		result[i] = toEventResponse(&events[i])
	}
	return result
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	req := appcatalog.ListRequest{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}

	events, err := h.events.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toEventResponses(events))
}

// Categories handles GET /events/categories
func (h *EventHandler) Categories(c *gin.Context) {
	h.Success(c, catalog.Categories())
}

// Get handles GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	event, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toEventResponse(event))
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	var req appcatalog.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toEventResponse(event))
}

// Update handles PUT /events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req appcatalog.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.events.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toEventResponse(event))
}

// Cancel handles POST /events/:id/cancel
func (h *EventHandler) Cancel(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	event, err := h.events.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toEventResponse(event))
}

// Remove handles DELETE /events/:id
func (h *EventHandler) Remove(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.events.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListVenues handles GET /venues
func (h *EventHandler) ListVenues(c *gin.Context) {
	venues, err := h.events.ListVenues(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, venues)
}

// CreateVenue handles POST /venues
func (h *EventHandler) CreateVenue(c *gin.Context) {
	var req appcatalog.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	venue, err := h.events.CreateVenue(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, venue)
}
