package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/booklyhq/bookly-api/internal/domain/booking"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/httpresp"
	"github.com/booklyhq/bookly-api/internal/middleware"
	"github.com/booklyhq/bookly-api/internal/models"
	ucBooking "github.com/booklyhq/bookly-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo domain.Repository

	createUC   *ucBooking.CreateBooking
	cancelUC   *ucBooking.CancelBooking
	completeUC *ucBooking.CompleteBooking
	destroyUC  *ucBooking.DestroyBooking
	listUC     *ucBooking.ListBookingsByDate
}

func NewBookingHandler(
	repo domain.Repository,
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	completeUC *ucBooking.CompleteBooking,
	destroyUC *ucBooking.DestroyBooking,
	listUC *ucBooking.ListBookingsByDate,
) *BookingHandler {
	return &BookingHandler{
		repo:       repo,
		createUC:   createUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		destroyUC:  destroyUC,
		listUC:     listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "not_found"):
		httperr.NotFound(c, "not_found", "Resource not found.")
	case httperr.IsBusiness(err, "conflict"):
		httperr.Conflict(c, "conflict", "The slot is already taken.")
	case httperr.IsBusiness(err, "hours"):
		httperr.BadRequest(c, "hours", "Outside the business operating hours.")
	case httperr.IsBusiness(err, "invalid_duration"):
		httperr.BadRequest(c, "invalid_duration", "Service has no usable duration.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case httperr.IsBusiness(err, "slot_in_past"):
		httperr.BadRequest(c, "slot_in_past", "The slot is in the past.")
	case httperr.IsBusiness(err, "too_late"):
		httperr.BadRequest(c, "too_late", "Cancellation window has closed.")
	case httperr.IsBusiness(err, "not_elapsed"):
		httperr.BadRequest(c, "not_elapsed", "The booking has not ended yet.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "The booking state does not allow this.")
	case httperr.IsBusiness(err, "unauthorized"):
		httperr.Forbidden(c, "unauthorized", "Not allowed for this booking.")
	default:
		httperr.Internal(c, "booking_operation_failed", "Unexpected error.")
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ServiceID: req.ServiceID,
		ClientID:  userID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	resp := gin.H{"booking": result.Booking}
	if result.CalendarWarning != nil {
		resp["warning"] = "calendar_event_failed"
	}

	c.JSON(http.StatusCreated, resp)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.repo.ListBookingsForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) ListForBusiness(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	businessID, err := strconv.ParseUint(c.Param("business_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), uint(businessID))
	if err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	if biz.UserID != userID && role != models.RoleAdmin {
		httperr.Forbidden(c, "unauthorized", "Not your business.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := parseDateInBusiness(biz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	dtos, err := h.listUC.Execute(c.Request.Context(), biz.ID, date)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.List(c, dtos)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), uint(id), userID, role)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	b, err := h.completeUC.Execute(c.Request.Context(), uint(id), userID, role)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Destroy(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	if err := h.destroyUC.Execute(c.Request.Context(), uint(id), userID, role); err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
