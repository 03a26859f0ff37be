package handler

import (
	"net/http"

	"devflow/internal/middleware"
	"devflow/internal/model"
	"devflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientHandler struct {
	clientRepo *repository.ClientRepository
}

func NewClientHandler(clientRepo *repository.ClientRepository) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo}
}

type ClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type ClientResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
	Address  string `json:"address,omitempty"`
	Notes    string `json:"notes,omitempty"`
	IsActive bool   `json:"is_active"`
}

func clientResponse(client *model.Client) ClientResponse {
	return ClientResponse{
		ID:       client.ID.String(),
		Name:     client.Name,
		Email:    client.Email,
		Phone:    client.Phone,
		Company:  client.Company,
		Address:  client.Address,
		Notes:    client.Notes,
		IsActive: client.IsActive,
	}
}

func (h *ClientHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	client := &model.Client{
		UserID:   userID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Address:  req.Address,
		Notes:    req.Notes,
		IsActive: true,
	}

	if err := h.clientRepo.Create(c.Request.Context(), client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, clientResponse(client))
}

func (h *ClientHandler) GetAll(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	includeInactive := c.Query("include_inactive") == "true"

	clients, err := h.clientRepo.GetByUser(c.Request.Context(), userID, includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clients"})
		return
	}

	response := make([]ClientResponse, len(clients))
	for i, client := range clients {
		response[i] = clientResponse(&client)
	}

	c.JSON(http.StatusOK, response)
}

// ownedClient loads a client and checks it belongs to the caller. Writes the
// error response and returns nil when it does not.
func (h *ClientHandler) ownedClient(c *gin.Context, userID uuid.UUID) *model.Client {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
		return nil
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return nil
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return nil
	}
	if client.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this client"})
		return nil
	}
	return client
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	client := h.ownedClient(c, userID)
	if client == nil {
		return
	}

	c.JSON(http.StatusOK, clientResponse(client))
}

func (h *ClientHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	client := h.ownedClient(c, userID)
	if client == nil {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.Company = req.Company
	client.Address = req.Address
	client.Notes = req.Notes

	if err := h.clientRepo.Update(c.Request.Context(), client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	c.JSON(http.StatusOK, clientResponse(client))
}

// Delete soft-deletes a client: the row stays, its projects stay, the client
// simply disappears from active listings.
func (h *ClientHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	client := h.ownedClient(c, userID)
	if client == nil {
		return
	}

	if err := h.clientRepo.Deactivate(c.Request.Context(), client.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
