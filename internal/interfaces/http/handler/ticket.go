package handler

import (
	"fmt"
	"net/http"
	"time"

	appticketing "github.com/citytickets/backend/internal/application/ticketing"
	"github.com/citytickets/backend/internal/domain/ticketing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketHandler serves the ticket lifecycle
type TicketHandler struct {
	BaseHandler
	lifecycle *appticketing.LifecycleService
}

// NewTicketHandler creates a TicketHandler
func NewTicketHandler(lifecycle *appticketing.LifecycleService) *TicketHandler {
	return &TicketHandler{lifecycle: lifecycle}
}

// RegisterPublicRoutes registers the unauthenticated verification endpoint.
// Anyone who scans a QR code lands here.
func (h *TicketHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/tickets/:id/verify", h.Verify)
}

// RegisterRoutes registers ticket routes for signed-in customers
func (h *TicketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tickets := rg.Group("/tickets")
	{
		tickets.POST("/purchase", h.Purchase)
		tickets.GET("", h.MyTickets)
		tickets.GET("/:id", h.Get)
		tickets.POST("/:id/refund", h.Refund)
		tickets.GET("/:id/qr", h.QR)
		tickets.GET("/:id/pdf", h.PDF)
	}
}

// RegisterStaffRoutes registers the check-in endpoint; the group must
// already require the check-in capability
func (h *TicketHandler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/tickets/:id/check-in", h.CheckIn)
}

// TicketResponse is the owner's view of a ticket
type TicketResponse struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	EventID    uuid.UUID       `json:"event_id"`
	Price      decimal.Decimal `json:"price"`
	Status     string          `json:"status"`
	RefundedAt *time.Time      `json:"refunded_at,omitempty"`
	UsedAt     *time.Time      `json:"used_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toTicketResponse(t *ticketing.Ticket) TicketResponse {
	return TicketResponse{
		ID:         t.ID,
		Number:     appticketing.TicketNumber(t.ID),
		EventID:    t.EventID,
		Price:      t.Price,
		Status:     t.Status.String(),
		RefundedAt: t.RefundedAt,
		UsedAt:     t.UsedAt,
		CreatedAt:  t.CreatedAt,
	}
}

// Purchase handles POST /tickets/purchase
func (h *TicketHandler) Purchase(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appticketing.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	ticket, err := h.lifecycle.Purchase(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toTicketResponse(ticket))
}

// MyTickets handles GET /tickets
func (h *TicketHandler) MyTickets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	tickets, err := h.lifecycle.MyTickets(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result := make([]TicketResponse, len(tickets))
	for i := range tickets {
		result[i] = toTicketResponse(&tickets[i])
	}
	h.Success(c, result)
}

// Get handles GET /tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	ticket, err := h.lifecycle.GetOwned(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTicketResponse(ticket))
}

// Refund handles POST /tickets/:id/refund
func (h *TicketHandler) Refund(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	ticket, err := h.lifecycle.RequestRefund(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTicketResponse(ticket))
}

// QR handles GET /tickets/:id/qr, returning the QR image as PNG
func (h *TicketHandler) QR(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	ticket, err := h.lifecycle.GetOwned(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if len(ticket.QRPNG) == 0 {
		h.NotFound(c, "Ticket has no QR image")
		return
	}

	c.Data(http.StatusOK, "image/png", ticket.QRPNG)
}

// PDF handles GET /tickets/:id/pdf, returning the printable e-ticket
func (h *TicketHandler) PDF(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	pdfBytes, err := h.lifecycle.TicketPDF(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("ticket-%s.pdf", appticketing.TicketNumber(id))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// Verify handles GET /tickets/:id/verify?token=...
// The verdict is reported with 200 regardless of outcome; scanning a code
// is a question, not an action. A path id that is not a UUID means the
// URL was not produced by us, which is the same as an invalid token.
func (h *TicketHandler) Verify(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Success(c, ticketing.InvalidTokenVerdict())
		return
	}

	verdict := h.lifecycle.Verify(c.Request.Context(), id, c.Query("token"))
	h.Success(c, verdict)
}

type checkInRequest struct {
	Token string `json:"token" binding:"required"`
}

// CheckIn handles POST /tickets/:id/check-in
func (h *TicketHandler) CheckIn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Success(c, ticketing.InvalidTokenVerdict())
		return
	}

	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	verdict, err := h.lifecycle.CheckIn(c.Request.Context(), id, req.Token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, verdict)
}
