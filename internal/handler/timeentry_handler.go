package handler

import (
	"net/http"
	"time"

	"devflow/internal/middleware"
	"devflow/internal/model"
	"devflow/internal/repository"
	"devflow/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TimeEntryHandler struct {
	entryRepo   repository.TimeEntryRepositoryInterface
	projectRepo repository.ProjectRepositoryInterface

	// now is swappable for tests.
	now func() time.Time
}

func NewTimeEntryHandler(entryRepo repository.TimeEntryRepositoryInterface, projectRepo repository.ProjectRepositoryInterface) *TimeEntryHandler {
	return &TimeEntryHandler{
		entryRepo:   entryRepo,
		projectRepo: projectRepo,
		now:         time.Now,
	}
}

type StartTimerRequest struct {
	ProjectID   string `json:"project_id" binding:"required,uuid"`
	Description string `json:"description" binding:"required"`
}

type ManualEntryRequest struct {
	ProjectID   string `json:"project_id" binding:"required,uuid"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
}

type TimeEntryResponse struct {
	ID              string  `json:"id"`
	ProjectID       string  `json:"project_id"`
	Description     string  `json:"description"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Duration        string  `json:"duration,omitempty"`
	Running         bool    `json:"running"`
}

func timeEntryResponse(e *model.TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:          e.ID.String(),
		ProjectID:   e.ProjectID.String(),
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		StartTime:   e.StartTime.Format(time.RFC3339),
		Running:     e.Running(),
	}
	if e.EndTime != nil {
		end := e.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
	}
	if e.DurationMinutes != nil {
		resp.DurationMinutes = e.DurationMinutes
		resp.Duration = timesheet.FormatMinutes(*e.DurationMinutes)
	}
	return resp
}

// StartTimer opens a running time entry for the caller. Only one timer may
// run at a time per user; the check is enforced here, not left to the client.
func (h *TimeEntryHandler) StartTimer(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
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

	running, err := h.entryRepo.GetRunning(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check running timer"})
		return
	}
	if running != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A timer is already running"})
		return
	}

	start := h.now()
	entry := &model.TimeEntry{
		UserID:      userID,
		ProjectID:   projectID,
		Description: req.Description,
		Date:        start,
		StartTime:   start,
	}

	if err := h.entryRepo.Create(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start timer"})
		return
	}

	c.JSON(http.StatusCreated, timeEntryResponse(entry))
}

// StopTimer completes the caller's running entry. Duration is elapsed whole
// minutes; a stop within the first minute records zero.
func (h *TimeEntryHandler) StopTimer(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	entry, err := h.entryRepo.GetRunning(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve running timer"})
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No running timer"})
		return
	}

	end := h.now()
	minutes := timesheet.DurationMinutes(entry.StartTime, end)
	if minutes < 0 {
		minutes = 0
	}

	entry.EndTime = &end
	entry.DurationMinutes = &minutes

	if err := h.entryRepo.Update(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop timer"})
		return
	}

	c.JSON(http.StatusOK, timeEntryResponse(entry))
}

// CreateManual records a time entry from HH:MM clock values. An end clock
// earlier than the start clock means the work ran past midnight.
func (h *TimeEntryHandler) CreateManual(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
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

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return
	}

	start, end, minutes, err := timesheet.ResolveManual(date, req.StartTime, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &model.TimeEntry{
		UserID:          userID,
		ProjectID:       projectID,
		Description:     req.Description,
		Date:            start,
		StartTime:       start,
		EndTime:         &end,
		DurationMinutes: &minutes,
	}

	if err := h.entryRepo.Create(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create time entry"})
		return
	}

	c.JSON(http.StatusCreated, timeEntryResponse(entry))
}

func (h *TimeEntryHandler) GetAll(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var filter repository.TimeEntryFilter
	if s := c.Query("start_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, use YYYY-MM-DD"})
			return
		}
		filter.Start = t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, use YYYY-MM-DD"})
			return
		}
		filter.End = t.Add(24*time.Hour - time.Second)
	}
	if s := c.Query("project_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project_id format"})
			return
		}
		filter.ProjectID = &id
	}

	entries, err := h.entryRepo.GetByUser(c.Request.Context(), userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time entries"})
		return
	}

	response := make([]TimeEntryResponse, len(entries))
	for i, e := range entries {
		response[i] = timeEntryResponse(&e)
	}

	c.JSON(http.StatusOK, response)
}

func (h *TimeEntryHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time entry ID format"})
		return
	}

	entry, err := h.entryRepo.GetByID(c.Request.Context(), entryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time entry"})
		return
	}
	if entry == nil || entry.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Time entry not found"})
		return
	}

	if err := h.entryRepo.Delete(c.Request.Context(), entryID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete time entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Time entry deleted"})
}

type TimeStatsResponse struct {
	TodayMinutes int    `json:"today_minutes"`
	Today        string `json:"today"`
	WeekMinutes  int    `json:"week_minutes"`
	Week         string `json:"week"`
	MonthMinutes int    `json:"month_minutes"`
	Month        string `json:"month"`
	TotalMinutes int    `json:"total_minutes"`
	Total        string `json:"total"`
}

// GetStats sums recorded minutes for today, the current ISO week, the current
// calendar month and all time.
func (h *TimeEntryHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	asOf := h.now()
	var resp TimeStatsResponse

	for _, scope := range []struct {
		scope   timesheet.Scope
		minutes *int
		text    *string
	}{
		{timesheet.ScopeToday, &resp.TodayMinutes, &resp.Today},
		{timesheet.ScopeWeek, &resp.WeekMinutes, &resp.Week},
		{timesheet.ScopeMonth, &resp.MonthMinutes, &resp.Month},
		{timesheet.ScopeTotal, &resp.TotalMinutes, &resp.Total},
	} {
		start, end, bounded := timesheet.Range(scope.scope, asOf)
		if !bounded {
			start, end = time.Time{}, time.Time{}
		}
		minutes, err := h.entryRepo.SumMinutes(c.Request.Context(), userID, start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
			return
		}
		*scope.minutes = minutes
		*scope.text = timesheet.FormatMinutes(minutes)
	}

	c.JSON(http.StatusOK, resp)
}
