package handler

import (
	"net/http"
	"time"

	"devflow/internal/middleware"
	"devflow/internal/model"
	"devflow/internal/report"
	"devflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportHandler struct {
	projectRepo     repository.ProjectRepositoryInterface
	clientRepo      *repository.ClientRepository
	transactionRepo repository.TransactionRepositoryInterface
	timeEntryRepo   repository.TimeEntryRepositoryInterface
	now             func() time.Time
}

func NewReportHandler(
	projectRepo repository.ProjectRepositoryInterface,
	clientRepo *repository.ClientRepository,
	transactionRepo repository.TransactionRepositoryInterface,
	timeEntryRepo repository.TimeEntryRepositoryInterface,
) *ReportHandler {
	return &ReportHandler{
		projectRepo:     projectRepo,
		clientRepo:      clientRepo,
		transactionRepo: transactionRepo,
		timeEntryRepo:   timeEntryRepo,
		now:             time.Now,
	}
}

type GenerateReportRequest struct {
	Type      string `json:"type" binding:"required"`
	ProjectID string `json:"project_id"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type ReportResponse struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Content   string `json:"content"`
}

// Generate builds one of the five textual reports over the requested period.
// An empty project_id means all projects.
func (h *ReportHandler) Generate(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !report.ValidType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Report type must be one of: project, financial, hours, invoice, summary"})
		return
	}

	start, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start date must be in YYYY-MM-DD format"})
		return
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be in YYYY-MM-DD format"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start date must not be after end date"})
		return
	}

	var project *model.Project
	if req.ProjectID != "" {
		projectID, err := uuid.Parse(req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
			return
		}
		project, err = h.projectRepo.GetOwned(c.Request.Context(), projectID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
			return
		}
		if project == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
	}

	content, err := h.render(c, userID, req.Type, project, report.Range{Start: start, End: end})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, ReportResponse{
		Type:      req.Type,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Content:   content,
	})
}

func (h *ReportHandler) render(c *gin.Context, userID uuid.UUID, reportType string, project *model.Project, rng report.Range) (string, error) {
	ctx := c.Request.Context()

	var projectID *uuid.UUID
	var client *model.Client
	if project != nil {
		projectID = &project.ID
		var err error
		client, err = h.clientRepo.GetByID(ctx, project.ClientID)
		if err != nil {
			return "", err
		}
	}

	txFilter := repository.TransactionFilter{Start: rng.Start, End: rng.End, ProjectID: projectID}
	// Entry dates carry the start clock, not midnight, so the inclusive end
	// bound has to cover the whole final day.
	entryFilter := repository.TimeEntryFilter{Start: rng.Start, End: rng.End.Add(24*time.Hour - time.Second), ProjectID: projectID}

	switch reportType {
	case report.TypeFinancial:
		transactions, err := h.transactionRepo.GetByUser(ctx, userID, txFilter)
		if err != nil {
			return "", err
		}
		return report.Financial(transactions, rng), nil

	case report.TypeHours:
		entries, err := h.timeEntryRepo.GetByUser(ctx, userID, entryFilter)
		if err != nil {
			return "", err
		}
		return report.Hours(entries, rng, project == nil), nil

	case report.TypeInvoice:
		if project == nil {
			return report.Invoice(nil, nil, nil, rng, h.now()), nil
		}
		entries, err := h.timeEntryRepo.GetByUser(ctx, userID, entryFilter)
		if err != nil {
			return "", err
		}
		return report.Invoice(project, client, entries, rng, h.now()), nil

	case report.TypeSummary:
		projects, err := h.projectRepo.GetByUser(ctx, userID)
		if err != nil {
			return "", err
		}
		transactions, err := h.transactionRepo.GetByUser(ctx, userID, txFilter)
		if err != nil {
			return "", err
		}
		entries, err := h.timeEntryRepo.GetByUser(ctx, userID, entryFilter)
		if err != nil {
			return "", err
		}
		return report.Summary(projects, transactions, entries, rng, h.now()), nil

	default:
		transactions, err := h.transactionRepo.GetByUser(ctx, userID, txFilter)
		if err != nil {
			return "", err
		}
		entries, err := h.timeEntryRepo.GetByUser(ctx, userID, entryFilter)
		if err != nil {
			return "", err
		}
		return report.Project(project, client, transactions, entries, rng), nil
	}
}

// QuickMonth renders the summary report for the current month to date, across
// all projects.
func (h *ReportHandler) QuickMonth(c *gin.Context) {
	now := h.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	h.quick(c, start, now)
}

// QuickYear renders the summary report for the current year to date, across
// all projects.
func (h *ReportHandler) QuickYear(c *gin.Context) {
	now := h.now()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.Local)
	h.quick(c, start, now)
}

func (h *ReportHandler) quick(c *gin.Context, start, now time.Time) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	rng := report.Range{Start: start, End: end}

	content, err := h.render(c, userID, report.TypeSummary, nil, rng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, ReportResponse{
		Type:      report.TypeSummary,
		StartDate: rng.Start.Format("2006-01-02"),
		EndDate:   rng.End.Format("2006-01-02"),
		Content:   content,
	})
}
