package handler

import (
	"net/http"
	"strings"
	"time"

	"devflow/internal/middleware"
	"devflow/internal/model"
	"devflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProjectHandler struct {
	projectRepo repository.ProjectRepositoryInterface
	clientRepo  *repository.ClientRepository
}

func NewProjectHandler(projectRepo repository.ProjectRepositoryInterface, clientRepo *repository.ClientRepository) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
	}
}

type ProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	ClientID    string  `json:"client_id" binding:"required,uuid"`
	Description string  `json:"description"`
	Budget      *string `json:"budget"`
	Status      string  `json:"status"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`

	ContractFileName string `json:"contract_file_name"`
	ContractLink     string `json:"contract_link"`
}

type ProjectResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ClientID    string  `json:"client_id"`
	Description string  `json:"description,omitempty"`
	Budget      *string `json:"budget,omitempty"`
	Status      string  `json:"status"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`

	ContractFileName string `json:"contract_file_name,omitempty"`
	ContractLink     string `json:"contract_link,omitempty"`
}

func projectResponse(p *model.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		ClientID:         p.ClientID.String(),
		Description:      p.Description,
		Status:           p.Status,
		ContractFileName: p.ContractFileName,
		ContractLink:     p.ContractLink,
	}
	if p.Budget != nil {
		budget := p.Budget.StringFixed(2)
		resp.Budget = &budget
	}
	if p.StartDate != nil {
		d := p.StartDate.Format("2006-01-02")
		resp.StartDate = &d
	}
	if p.EndDate != nil {
		d := p.EndDate.Format("2006-01-02")
		resp.EndDate = &d
	}
	return resp
}

// applyProjectRequest validates the request fields and copies them onto the
// project. A non-nil error message is written to the response already.
func (h *ProjectHandler) applyProjectRequest(c *gin.Context, req *ProjectRequest, p *model.Project) bool {
	p.Name = req.Name
	p.Description = req.Description

	if req.Status != "" {
		if !model.ValidProjectStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project status"})
			return false
		}
		p.Status = req.Status
	}

	if req.Budget != nil && *req.Budget != "" {
		budget, err := decimal.NewFromString(*req.Budget)
		if err != nil || budget.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget"})
			return false
		}
		p.Budget = &budget
	}

	if req.StartDate != nil && *req.StartDate != "" {
		d, err := time.ParseInLocation("2006-01-02", *req.StartDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, use YYYY-MM-DD"})
			return false
		}
		p.StartDate = &d
	}
	if req.EndDate != nil && *req.EndDate != "" {
		d, err := time.ParseInLocation("2006-01-02", *req.EndDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, use YYYY-MM-DD"})
			return false
		}
		p.EndDate = &d
	}

	// Contract reference: link is opaque but must look like a web URL. It is
	// never fetched here.
	if req.ContractLink != "" {
		if !strings.HasPrefix(req.ContractLink, "http://") && !strings.HasPrefix(req.ContractLink, "https://") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Contract link must start with http:// or https://"})
			return false
		}
		if strings.TrimSpace(req.ContractFileName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Contract file name is required with a contract link"})
			return false
		}
	}
	p.ContractFileName = req.ContractFileName
	p.ContractLink = req.ContractLink

	return true
}

func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
		return
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return
	}
	if client == nil || client.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	project := &model.Project{
		UserID:   userID,
		ClientID: clientID,
		Status:   model.StatusProposal,
	}
	if !h.applyProjectRequest(c, &req, project) {
		return
	}

	if err := h.projectRepo.Create(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, projectResponse(project))
}

func (h *ProjectHandler) GetAll(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projects, err := h.projectRepo.GetByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		response[i] = projectResponse(&project)
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	project, err := h.projectRepo.GetOwned(c.Request.Context(), projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	c.JSON(http.StatusOK, projectResponse(project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	project, err := h.projectRepo.GetOwned(c.Request.Context(), projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.ClientID != project.ClientID.String() {
		clientID, err := uuid.Parse(req.ClientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
			return
		}
		client, err := h.clientRepo.GetByID(c.Request.Context(), clientID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
			return
		}
		if client == nil || client.UserID != userID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		project.ClientID = clientID
	}

	if !h.applyProjectRequest(c, &req, project) {
		return
	}

	if err := h.projectRepo.Update(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, projectResponse(project))
}

// Delete hard-deletes a project together with its transactions, time entries,
// boards, columns, tasks and contracts.
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	project, err := h.projectRepo.GetOwned(c.Request.Context(), projectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	if err := h.projectRepo.Delete(c.Request.Context(), projectID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
