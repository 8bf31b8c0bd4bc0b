package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booklyhq/bookly-api/internal/audit"
	"github.com/booklyhq/bookly-api/internal/clock"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/middleware"
	"github.com/booklyhq/bookly-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// QueueTicketHandler runs front-desk check-in tickets. Positions are per
// business per day, assigned at issue time and never compacted.
type QueueTicketHandler struct {
	db    *gorm.DB
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewQueueTicketHandler(db *gorm.DB, clk clock.Clock, auditd *audit.Dispatcher) *QueueTicketHandler {
	return &QueueTicketHandler{db: db, clock: clk, audit: auditd}
}

// ======================================================
// REQUESTS
// ======================================================

type IssueTicketRequest struct {
	BookingID uint `json:"booking_id" binding:"required"`
}

type UpdateTicketRequest struct {
	Status string `json:"status" binding:"required"`
}

func validTicketStatus(s string) bool {
	switch s {
	case models.TicketWaiting, models.TicketCalled, models.TicketServed, models.TicketSkipped:
		return true
	}
	return false
}

// ownsBookingBusiness loads the booking with its business and checks the
// actor runs the desk.
func (h *QueueTicketHandler) ownsBookingBusiness(
	c *gin.Context,
	bookingID uint,
) (*models.Booking, bool) {

	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var b models.Booking
	if err := h.db.
		Preload("Service").
		Preload("Service.Business").
		First(&b, bookingID).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return nil, false
	}

	if b.Service.Business.UserID != userID && role != models.RoleAdmin {
		httperr.Forbidden(c, "unauthorized", "Not your business.")
		return nil, false
	}

	return &b, true
}

// ======================================================
// ISSUE
// ======================================================

func (h *QueueTicketHandler) Issue(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req IssueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Booking id is required.")
		return
	}

	b, ok := h.ownsBookingBusiness(c, req.BookingID)
	if !ok {
		return
	}

	var existing int64
	h.db.Model(&models.QueueTicket{}).
		Where("booking_id = ?", b.ID).
		Count(&existing)
	if existing > 0 {
		httperr.Conflict(c, "ticket_already_issued", "Booking already has a ticket.")
		return
	}

	now := h.clock.Now()
	dayStart := now.Truncate(24 * time.Hour)

	// Next position for the business today.
	var position int64
	h.db.Model(&models.QueueTicket{}).
		Joins("JOIN bookings ON bookings.id = queue_tickets.booking_id").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.business_id = ? AND queue_tickets.issued_at >= ?", b.Service.BusinessID, dayStart).
		Count(&position)

	ticket := models.QueueTicket{
		BookingID: b.ID,
		Position:  int(position) + 1,
		Status:    models.TicketWaiting,
		IssuedAt:  &now,
	}

	if err := h.db.Create(&ticket).Error; err != nil {
		httperr.Internal(c, "failed_to_issue_ticket", "Could not issue ticket.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: &b.Service.BusinessID,
		UserID:     &userID,
		Action:     "queue_ticket_issued",
		Entity:     "queue_ticket",
		EntityID:   &ticket.ID,
	})

	c.JSON(http.StatusCreated, ticket)
}

// ======================================================
// UPDATE
// ======================================================

func (h *QueueTicketHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid ticket id.")
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil || !validTicketStatus(req.Status) {
		httperr.BadRequest(c, "invalid_status", "Unknown ticket status.")
		return
	}

	var ticket models.QueueTicket
	if err := h.db.First(&ticket, uint(id)).Error; err != nil {
		httperr.NotFound(c, "ticket_not_found", "Ticket not found.")
		return
	}

	b, ok := h.ownsBookingBusiness(c, ticket.BookingID)
	if !ok {
		return
	}

	ticket.Status = req.Status
	if err := h.db.Save(&ticket).Error; err != nil {
		httperr.Internal(c, "failed_to_update_ticket", "Could not update ticket.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: &b.Service.BusinessID,
		UserID:     &userID,
		Action:     "queue_ticket_" + req.Status,
		Entity:     "queue_ticket",
		EntityID:   &ticket.ID,
	})

	c.JSON(http.StatusOK, ticket)
}

// ======================================================
// LIST
// ======================================================

func (h *QueueTicketHandler) ListForBusiness(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	businessID, err := strconv.ParseUint(c.Param("business_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	var biz models.Business
	if err := h.db.First(&biz, uint(businessID)).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	if biz.UserID != userID && role != models.RoleAdmin {
		httperr.Forbidden(c, "unauthorized", "Not your business.")
		return
	}

	var tickets []models.QueueTicket
	if err := h.db.
		Joins("JOIN bookings ON bookings.id = queue_tickets.booking_id").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.business_id = ?", biz.ID).
		Order("queue_tickets.position ASC").
		Find(&tickets).Error; err != nil {

		httperr.Internal(c, "failed_to_list_tickets", "Could not list tickets.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}
