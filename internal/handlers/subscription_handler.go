package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/booklyhq/bookly-api/internal/config"
	domain "github.com/booklyhq/bookly-api/internal/domain/subscription"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/middleware"
	"github.com/booklyhq/bookly-api/internal/payment"
	ucSubscription "github.com/booklyhq/bookly-api/internal/usecase/subscription"
)

// ======================================================
// HANDLER
// ======================================================

type SubscriptionHandler struct {
	repo     domain.Repository
	verifier payment.Verifier
	config   *config.Config

	startTrialUC  *ucSubscription.StartTrial
	activateUC    *ucSubscription.ActivateFromPayment
	cancelUC      *ucSubscription.CancelSubscription
	entitlementUC *ucSubscription.CheckEntitlement
}

func NewSubscriptionHandler(
	repo domain.Repository,
	verifier payment.Verifier,
	cfg *config.Config,
	startTrialUC *ucSubscription.StartTrial,
	activateUC *ucSubscription.ActivateFromPayment,
	cancelUC *ucSubscription.CancelSubscription,
	entitlementUC *ucSubscription.CheckEntitlement,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		repo:          repo,
		verifier:      verifier,
		config:        cfg,
		startTrialUC:  startTrialUC,
		activateUC:    activateUC,
		cancelUC:      cancelUC,
		entitlementUC: entitlementUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ActivateSubscriptionRequest struct {
	PaymentRef string `json:"payment_ref" binding:"required"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapSubscriptionError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "not_found"):
		httperr.NotFound(c, "not_found", "Resource not found.")
	case httperr.IsBusiness(err, "owner_role_required"):
		httperr.Forbidden(c, "owner_role_required", "Only owners subscribe.")
	case httperr.IsBusiness(err, "unauthorized"):
		httperr.Forbidden(c, "unauthorized", "Not your subscription.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Subscription state does not allow this.")
	case httperr.IsBusiness(err, "invalid_payment_reference"):
		httperr.BadRequest(c, "invalid_payment_reference", "Payment reference is invalid.")
	case httperr.IsBusiness(err, "payment_already_used"):
		httperr.Conflict(c, "payment_already_used", "Payment reference already consumed.")
	case httperr.IsBusiness(err, "payment_not_approved"):
		httperr.BadRequest(c, "payment_not_approved", "Payment is not approved.")
	case httperr.IsBusiness(err, "payment_amount_mismatch"):
		httperr.BadRequest(c, "payment_amount_mismatch", "Payment does not cover the plan.")
	case httperr.IsBusiness(err, "payment_currency_mismatch"):
		httperr.BadRequest(c, "payment_currency_mismatch", "Payment currency does not match.")
	default:
		httperr.Internal(c, "subscription_operation_failed", "Unexpected error.")
	}
}

// ======================================================
// LIST
// ======================================================

func (h *SubscriptionHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	subs, err := h.repo.ListForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_subscriptions", "Could not list subscriptions.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

// ======================================================
// TRIAL
// ======================================================

func (h *SubscriptionHandler) StartTrial(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	sub, err := h.startTrialUC.Execute(c.Request.Context(), userID)
	if err != nil {
		mapSubscriptionError(c, err)
		return
	}

	// The one free trial is already spent, or the role never gets one.
	if sub == nil {
		httperr.Write(c, http.StatusUnprocessableEntity,
			"trial_not_available", "No trial available; pay to activate.")
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// ======================================================
// ACTIVATE (PAID)
// ======================================================

func (h *SubscriptionHandler) Activate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ActivateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Payment reference is required.")
		return
	}

	amount := h.config.SubscriptionAmount
	currency := h.config.SubscriptionCurrency

	if err := h.verifier.Verify(c.Request.Context(), req.PaymentRef, amount, currency); err != nil {
		var be httperr.BusinessError
		if errors.As(err, &be) {
			mapSubscriptionError(c, err)
			return
		}
		httperr.Internal(c, "payment_verification_failed", "Could not verify the payment.")
		return
	}

	sub, err := h.activateUC.Execute(c.Request.Context(), userID, req.PaymentRef, amount, currency)
	if err != nil {
		mapSubscriptionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// ======================================================
// CANCEL
// ======================================================

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid subscription id.")
		return
	}

	sub, err := h.cancelUC.Execute(c.Request.Context(), uint(id), userID, role)
	if err != nil {
		mapSubscriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// ======================================================
// ENTITLEMENT
// ======================================================

func (h *SubscriptionHandler) Entitlement(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	entitled, err := h.entitlementUC.Execute(c.Request.Context(), userID)
	if err != nil {
		mapSubscriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entitled": entitled})
}
