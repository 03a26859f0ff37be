package handler

import (
	"errors"
	"net/http"
	"time"

	"devflow/internal/middleware"
	"devflow/internal/model"
	"devflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TaskHandler struct {
	taskRepo  repository.TaskRepositoryInterface
	boardRepo repository.BoardRepositoryInterface
}

func NewTaskHandler(taskRepo repository.TaskRepositoryInterface, boardRepo repository.BoardRepositoryInterface) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo, boardRepo: boardRepo}
}

type CreateTaskRequest struct {
	Title          string  `json:"title" binding:"required"`
	Description    string  `json:"description"`
	ColumnID       string  `json:"column_id" binding:"required,uuid"`
	Priority       string  `json:"priority"`
	EstimatedHours *string `json:"estimated_hours"`
	AssignedTo     string  `json:"assigned_to"`
	DueDate        *string `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Priority       *string `json:"priority"`
	EstimatedHours *string `json:"estimated_hours"`
	AssignedTo     *string `json:"assigned_to"`
	DueDate        *string `json:"due_date"`
}

type MoveTaskRequest struct {
	ColumnID string `json:"column_id" binding:"required,uuid"`
	Position *int   `json:"position" binding:"required"`
}

type TaskResponse struct {
	ID             string  `json:"id"`
	ColumnID       string  `json:"column_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Priority       string  `json:"priority"`
	Position       int     `json:"position"`
	EstimatedHours *string `json:"estimated_hours,omitempty"`
	AssignedTo     string  `json:"assigned_to,omitempty"`
	DueDate        *string `json:"due_date,omitempty"`
}

func taskResponse(task *model.Task) TaskResponse {
	response := TaskResponse{
		ID:          task.ID.String(),
		ColumnID:    task.ColumnID.String(),
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Position:    task.Position,
		AssignedTo:  task.AssignedTo,
	}
	if task.EstimatedHours != nil {
		hours := task.EstimatedHours.String()
		response.EstimatedHours = &hours
	}
	if task.DueDate != nil {
		due := task.DueDate.Format("2006-01-02")
		response.DueDate = &due
	}
	return response
}

// ownedColumn loads a column and verifies the caller owns the board it belongs
// to, writing the error response when it cannot be used.
func (h *TaskHandler) ownedColumn(c *gin.Context, userID uuid.UUID, columnID uuid.UUID) *model.BoardColumn {
	column, err := h.boardRepo.GetColumnByID(c.Request.Context(), columnID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve column"})
		return nil
	}
	if column == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return nil
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), column.BoardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return nil
	}
	if board == nil || board.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this column"})
		return nil
	}
	return column
}

// Create adds a task at the bottom of its column: the new position is one past
// the highest position already in the column, or 0 when the column is empty.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if h.ownedColumn(c, userID, columnID) == nil {
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidTaskPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be one of: low, medium, high"})
		return
	}

	task := &model.Task{
		ColumnID:    columnID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		AssignedTo:  req.AssignedTo,
	}

	if req.EstimatedHours != nil && *req.EstimatedHours != "" {
		hours, err := decimal.NewFromString(*req.EstimatedHours)
		if err != nil || hours.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Estimated hours must be a non-negative number"})
			return
		}
		task.EstimatedHours = &hours
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.ParseInLocation("2006-01-02", *req.DueDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Due date must be in YYYY-MM-DD format"})
			return
		}
		task.DueDate = &due
	}

	position, err := h.taskRepo.NextPosition(c.Request.Context(), columnID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	task.Position = position

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, taskResponse(task))
}

// ownedTask loads a task and verifies the caller owns it through its column's
// board, writing the error response when it cannot be used.
func (h *TaskHandler) ownedTask(c *gin.Context, userID uuid.UUID) *model.Task {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return nil
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return nil
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return nil
	}

	if h.ownedColumn(c, userID, task.ColumnID) == nil {
		return nil
	}
	return task
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task := h.ownedTask(c, userID)
	if task == nil {
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

func (h *TaskHandler) GetByColumn(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if h.ownedColumn(c, userID, columnID) == nil {
		return
	}

	tasks, err := h.taskRepo.GetByColumnID(c.Request.Context(), columnID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = taskResponse(&task)
	}

	c.JSON(http.StatusOK, response)
}

// Update changes task fields in place. Position and column are not touched
// here; moving a task goes through Move so sibling positions stay consistent.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task := h.ownedTask(c, userID)
	if task == nil {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
			return
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !model.ValidTaskPriority(*req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be one of: low, medium, high"})
			return
		}
		task.Priority = *req.Priority
	}
	if req.EstimatedHours != nil {
		if *req.EstimatedHours == "" {
			task.EstimatedHours = nil
		} else {
			hours, err := decimal.NewFromString(*req.EstimatedHours)
			if err != nil || hours.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Estimated hours must be a non-negative number"})
				return
			}
			task.EstimatedHours = &hours
		}
	}
	if req.AssignedTo != nil {
		task.AssignedTo = *req.AssignedTo
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			due, err := time.ParseInLocation("2006-01-02", *req.DueDate, time.Local)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Due date must be in YYYY-MM-DD format"})
				return
			}
			task.DueDate = &due
		}
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Move relocates a task to a column and position, shifting sibling tasks in
// both the old and new columns inside one transaction.
func (h *TaskHandler) Move(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task := h.ownedTask(c, userID)
	if task == nil {
		return
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}
	if *req.Position < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Position must be non-negative"})
		return
	}

	if h.ownedColumn(c, userID, columnID) == nil {
		return
	}

	if err := h.taskRepo.MoveTask(c.Request.Context(), task.ID, columnID, *req.Position); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move task"})
		return
	}

	moved, err := h.taskRepo.GetByID(c.Request.Context(), task.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	c.JSON(http.StatusOK, taskResponse(moved))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task := h.ownedTask(c, userID)
	if task == nil {
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), task.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
