package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/vportella/landfolio/internal/errors"
	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/services"
)

// ClientHandler handles client-related HTTP requests.
type ClientHandler struct {
	service services.ClientService
}

// NewClientHandler creates a new ClientHandler instance.
func NewClientHandler(service services.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// CreateClientRequest represents the body for client registration.
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	TaxID string `json:"tax_id"`
	Notes string `json:"notes"`
}

// ClientsResponse represents the response for the client listing.
type ClientsResponse struct {
	Clients []services.ClientWithParcel `json:"clients"`
	Count   int                         `json:"count"`
}

// List handles GET /api/v1/clients.
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.service.List(c.Request.Context())
	if err != nil {
		if handleStoreError(c, err) {
			return
		}
		apierrors.InternalServerError(c, "Failed to list clients", err)
		return
	}

	c.JSON(http.StatusOK, ClientsResponse{Clients: clients, Count: len(clients)})
}

// Create handles POST /api/v1/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	client := models.Client{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		TaxID: req.TaxID,
		Notes: req.Notes,
	}
	if err := h.service.Create(c.Request.Context(), client); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidClient):
			apierrors.BadRequest(c, err.Error(), nil)
		case handleStoreError(c, err):
		default:
			apierrors.InternalServerError(c, "Failed to register client", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}
