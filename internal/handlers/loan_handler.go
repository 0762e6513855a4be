package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/vportella/landfolio/internal/errors"
	"github.com/vportella/landfolio/internal/loan"
	"github.com/vportella/landfolio/internal/services"
)

// LoanHandler handles financing simulation HTTP requests.
type LoanHandler struct {
	service services.LoanService
}

// NewLoanHandler creates a new LoanHandler instance.
func NewLoanHandler(service services.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

// Simulate handles POST /api/v1/loans/simulate.
func (h *LoanHandler) Simulate(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	result, err := h.service.Simulate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to run simulation")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Register handles POST /api/v1/loans/simulations.
func (h *LoanHandler) Register(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to register simulation")
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *LoanHandler) bind(c *gin.Context) (services.SimulateRequest, bool) {
	var req services.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return req, false
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return req, false
	}
	return req, true
}

func (h *LoanHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrParcelNotFound):
		apierrors.NotFound(c, "No parcel with this property number")
	case errors.Is(err, services.ErrInvalidSalePrice),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, loan.ErrInvalidTerms):
		apierrors.BadRequest(c, err.Error(), nil)
	case handleStoreError(c, err):
	default:
		apierrors.InternalServerError(c, fallback, err)
	}
}
