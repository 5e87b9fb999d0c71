package handler

import (
	appengagement "github.com/citytickets/backend/internal/application/engagement"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EngagementHandler serves favorites and the shopping cart
type EngagementHandler struct {
	BaseHandler
	engagement *appengagement.Service
}

// NewEngagementHandler creates an EngagementHandler
func NewEngagementHandler(engagement *appengagement.Service) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

// RegisterRoutes registers engagement routes; the group must already
// require authentication
func (h *EngagementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/favorites", h.ListFavorites)
	rg.POST("/events/:id/favorite", h.ToggleFavorite)

	cart := rg.Group("/cart")
	{
		cart.GET("", h.ViewCart)
		cart.POST("/items", h.AddToCart)
		cart.DELETE("/items/:id", h.RemoveFromCart)
	}
}

// ToggleFavorite handles POST /events/:id/favorite
func (h *EngagementHandler) ToggleFavorite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	eventID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	favorited, err := h.engagement.ToggleFavorite(c.Request.Context(), userID, eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"favorited": favorited})
}

// ListFavorites handles GET /favorites
func (h *EngagementHandler) ListFavorites(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	favorites, err := h.engagement.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, favorites)
}

type addToCartRequest struct {
	EventID  string `json:"event_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// AddToCart handles POST /cart/items
func (h *EngagementHandler) AddToCart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		h.BadRequest(c, "Invalid event id")
		return
	}

	item, err := h.engagement.AddToCart(c.Request.Context(), userID, eventID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *EngagementHandler) RemoveFromCart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	itemID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.engagement.RemoveFromCart(c.Request.Context(), userID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ViewCart handles GET /cart
func (h *EngagementHandler) ViewCart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.engagement.ViewCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}
