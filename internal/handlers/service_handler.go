package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booklyhq/bookly-api/internal/audit"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/middleware"
	"github.com/booklyhq/bookly-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditd *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditd}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required"`
	Price       float64 `json:"price"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *ServiceHandler) ownedBusiness(c *gin.Context) (*models.Business, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)
	id := c.Param("business_id")

	var biz models.Business
	if err := h.db.First(&biz, id).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return nil, false
	}

	if biz.UserID != userID && role != models.RoleAdmin {
		httperr.Forbidden(c, "unauthorized", "Not your business.")
		return nil, false
	}

	return &biz, true
}

// ======================================================
// CRUD
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	biz, ok := h.ownedBusiness(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	if req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duration must be positive minutes.")
		return
	}

	svc := models.Service{
		BusinessID:  biz.ID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		// Unique index on (business_id, name).
		httperr.BadRequest(c, "service_already_exists", "Service name already in use.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		BusinessID: &biz.ID,
		UserID:     &userID,
		Action:     "service_created",
		Entity:     "service",
		EntityID:   &svc.ID,
	})

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	biz, ok := h.ownedBusiness(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND business_id = ?", c.Param("id"), biz.ID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	if req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duration must be positive minutes.")
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMin = req.DurationMin
	svc.Price = req.Price

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.BadRequest(c, "service_already_exists", "Service name already in use.")
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	biz, ok := h.ownedBusiness(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND business_id = ?", c.Param("id"), biz.ID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if err := h.db.Delete(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete service.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": svc.ID})
}

func (h *ServiceHandler) List(c *gin.Context) {
	biz, ok := h.ownedBusiness(c)
	if !ok {
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

	c.JSON(http.StatusOK, gin.H{"services": services})
}
