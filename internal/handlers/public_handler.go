package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
	ucBooking "github.com/booklyhq/bookly-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the unauthenticated browse-and-check surface:
// business directory, service listings and slot availability.
type PublicHandler struct {
	db           *gorm.DB
	availability *ucBooking.GetAvailability
}

func NewPublicHandler(db *gorm.DB, availability *ucBooking.GetAvailability) *PublicHandler {
	return &PublicHandler{db: db, availability: availability}
}

// ======================================================
// DIRECTORY
// ======================================================

func (h *PublicHandler) ListBusinesses(c *gin.Context) {
	categoryStr := c.Query("category_id")
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Model(&models.Business{}).Preload("Category")

	if categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_category", "Invalid category id.")
			return
		}
		q = q.Where("category_id = ?", uint(categoryID))
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var businesses []models.Business
	if err := q.Order("id ASC").Find(&businesses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_businesses", "Could not list businesses.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	businessID := c.Param("business_id")

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("business_id = ?", biz.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": biz,
		"services": services,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Param("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), uint(serviceID), dateStr)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "not_found"):
			httperr.NotFound(c, "service_not_found", "Service not found.")
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
		default:
			httperr.Internal(c, "availability_failed", "Could not compute availability.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
