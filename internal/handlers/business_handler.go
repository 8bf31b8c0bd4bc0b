package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booklyhq/bookly-api/internal/audit"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/middleware"
	"github.com/booklyhq/bookly-api/internal/models"
	"github.com/booklyhq/bookly-api/internal/timezone"
	ucSubscription "github.com/booklyhq/bookly-api/internal/usecase/subscription"
)

// ======================================================
// HANDLER
// ======================================================

type BusinessHandler struct {
	db          *gorm.DB
	entitlement *ucSubscription.CheckEntitlement
	audit       *audit.Dispatcher
}

func NewBusinessHandler(
	db *gorm.DB,
	entitlement *ucSubscription.CheckEntitlement,
	auditd *audit.Dispatcher,
) *BusinessHandler {
	return &BusinessHandler{
		db:          db,
		entitlement: entitlement,
		audit:       auditd,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BusinessRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	CategoryID  uint   `json:"category_id" binding:"required"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	OpenTime  string `json:"open_time" binding:"required"`
	CloseTime string `json:"close_time" binding:"required"`
	Timezone  string `json:"timezone"`
}

// validHoursWindow rejects unparsable or inverted windows at the edge, so
// the scheduling core only ever sees usable clock strings.
func validHoursWindow(open, close string) bool {
	o, err := time.Parse("15:04", open)
	if err != nil {
		return false
	}
	c, err := time.Parse("15:04", close)
	if err != nil {
		return false
	}
	return c.After(o)
}

// ======================================================
// CREATE
// ======================================================

func (h *BusinessHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != models.RoleOwner && role != models.RoleAdmin {
		httperr.Forbidden(c, "owner_role_required", "Only owners can create businesses.")
		return
	}

	entitled, err := h.entitlement.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "entitlement_check_failed", "Could not verify subscription.")
		return
	}
	if !entitled {
		httperr.Forbidden(c, "entitlement_required", "An active subscription or trial is required.")
		return
	}

	var req BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid business data.")
		return
	}

	if !validHoursWindow(req.OpenTime, req.CloseTime) {
		httperr.BadRequest(c, "invalid_hours", "Opening hours must be HH:MM with close after open.")
		return
	}

	tz := req.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	var category models.Category
	if err := h.db.First(&category, req.CategoryID).Error; err != nil {
		httperr.BadRequest(c, "category_not_found", "Category not found.")
		return
	}

	biz := models.Business{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Phone:       req.Phone,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		Timezone:    tz,
	}

	if err := h.db.Create(&biz).Error; err != nil {
		httperr.Internal(c, "failed_to_create_business", "Could not create business.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: &biz.ID,
		UserID:     &userID,
		Action:     "business_created",
		Entity:     "business",
		EntityID:   &biz.ID,
	})

	c.JSON(http.StatusCreated, biz)
}

// ======================================================
// UPDATE
// ======================================================

func (h *BusinessHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)
	id := c.Param("business_id")

	var biz models.Business
	if err := h.db.First(&biz, id).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	if biz.UserID != userID && role != models.RoleAdmin {
		httperr.Forbidden(c, "unauthorized", "Not your business.")
		return
	}

	var req BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid business data.")
		return
	}

	if !validHoursWindow(req.OpenTime, req.CloseTime) {
		httperr.BadRequest(c, "invalid_hours", "Opening hours must be HH:MM with close after open.")
		return
	}

	tz := req.Timezone
	if tz == "" {
		tz = biz.Timezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	biz.Name = req.Name
	biz.Description = req.Description
	biz.Phone = req.Phone
	biz.Location = req.Location
	biz.CategoryID = req.CategoryID
	biz.Latitude = req.Latitude
	biz.Longitude = req.Longitude
	biz.OpenTime = req.OpenTime
	biz.CloseTime = req.CloseTime
	biz.Timezone = tz

	if err := h.db.Save(&biz).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Could not update business.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: &biz.ID,
		UserID:     &userID,
		Action:     "business_updated",
		Entity:     "business",
		EntityID:   &biz.ID,
	})

	c.JSON(http.StatusOK, biz)
}

// ======================================================
// READ
// ======================================================

func (h *BusinessHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("business_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	var biz models.Business
	if err := h.db.Preload("Category").First(&biz, uint(id)).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	c.JSON(http.StatusOK, biz)
}

func (h *BusinessHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var businesses []models.Business
	if err := h.db.
		Preload("Category").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&businesses).Error; err != nil {

		httperr.Internal(c, "failed_to_list_businesses", "Could not list businesses.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}
