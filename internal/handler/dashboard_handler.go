package handler

import (
	"net/http"
	"time"

	"devflow/internal/middleware"
	"devflow/internal/model"
	"devflow/internal/repository"
	"devflow/internal/timesheet"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	projectRepo     repository.ProjectRepositoryInterface
	transactionRepo *repository.TransactionRepository
	timeEntryRepo   repository.TimeEntryRepositoryInterface
	now             func() time.Time
}

func NewDashboardHandler(
	projectRepo repository.ProjectRepositoryInterface,
	transactionRepo *repository.TransactionRepository,
	timeEntryRepo repository.TimeEntryRepositoryInterface,
) *DashboardHandler {
	return &DashboardHandler{
		projectRepo:     projectRepo,
		transactionRepo: transactionRepo,
		timeEntryRepo:   timeEntryRepo,
		now:             time.Now,
	}
}

type DashboardStatsResponse struct {
	ActiveProjects  int64  `json:"active_projects"`
	MonthIncome     string `json:"month_income"`
	MonthExpenses   string `json:"month_expenses"`
	MonthBalance    string `json:"month_balance"`
	MonthMinutes    int    `json:"month_minutes"`
	MonthHoursLabel string `json:"month_hours_label"`
}

// GetStats returns the headline numbers for the current calendar month plus
// the count of active projects.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	ctx := c.Request.Context()

	activeCount, err := h.projectRepo.CountByStatus(ctx, userID, model.StatusActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard stats"})
		return
	}

	monthStart, monthEnd, _ := timesheet.Range(timesheet.ScopeMonth, h.now())
	// The timesheet window is half-open; the transaction filter is inclusive.
	filter := repository.TransactionFilter{Start: monthStart, End: monthEnd.Add(-time.Second)}

	income, err := h.transactionRepo.SumByType(ctx, userID, model.TypeIncome, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard stats"})
		return
	}
	expenses, err := h.transactionRepo.SumByType(ctx, userID, model.TypeExpense, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard stats"})
		return
	}

	minutes, err := h.timeEntryRepo.SumMinutes(ctx, userID, monthStart, monthEnd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, DashboardStatsResponse{
		ActiveProjects:  activeCount,
		MonthIncome:     income.StringFixed(2),
		MonthExpenses:   expenses.StringFixed(2),
		MonthBalance:    income.Sub(expenses).StringFixed(2),
		MonthMinutes:    minutes,
		MonthHoursLabel: timesheet.FormatMinutes(minutes),
	})
}
