package handler

import (
	"net/http"

	"devflow/internal/middleware"
	"devflow/internal/model"
	"devflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boardRepo   repository.BoardRepositoryInterface
	projectRepo repository.ProjectRepositoryInterface
	taskRepo    repository.TaskRepositoryInterface
}

func NewBoardHandler(
	boardRepo repository.BoardRepositoryInterface,
	projectRepo repository.ProjectRepositoryInterface,
	taskRepo repository.TaskRepositoryInterface,
) *BoardHandler {
	return &BoardHandler{
		boardRepo:   boardRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required"`
	ProjectID   string `json:"project_id" binding:"required,uuid"`
	Description string `json:"description"`
}

type UpdateBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ColumnResponse struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Color    string         `json:"color"`
	Position int            `json:"position"`
	Tasks    []TaskResponse `json:"tasks,omitempty"`
}

type BoardResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	ProjectID   string           `json:"project_id"`
	Columns     []ColumnResponse `json:"columns,omitempty"`
}

func boardResponse(board *model.Board) BoardResponse {
	return BoardResponse{
		ID:          board.ID.String(),
		Name:        board.Name,
		Description: board.Description,
		ProjectID:   board.ProjectID.String(),
	}
}

// Create creates a board for one of the caller's projects. Every new board
// gets the same four starter columns in a single transaction.
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateBoardRequest
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

	board := &model.Board{
		UserID:      userID,
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
	}

	columns, err := h.boardRepo.CreateWithDefaultColumns(c.Request.Context(), board)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	response := boardResponse(board)
	response.Columns = make([]ColumnResponse, len(columns))
	for i, column := range columns {
		response.Columns[i] = ColumnResponse{
			ID:       column.ID.String(),
			Name:     column.Name,
			Color:    column.Color,
			Position: column.Position,
		}
	}

	c.JSON(http.StatusCreated, response)
}

func (h *BoardHandler) GetByProject(c *gin.Context) {
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

	boards, err := h.boardRepo.GetByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i, board := range boards {
		response[i] = boardResponse(&board)
	}

	c.JSON(http.StatusOK, response)
}

// ownedBoard loads a board and checks ownership, writing the error response
// when the board cannot be used.
func (h *BoardHandler) ownedBoard(c *gin.Context, userID uuid.UUID) *model.Board {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return nil
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return nil
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return nil
	}
	if board.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this board"})
		return nil
	}
	return board
}

// GetByID returns the board with its columns and their tasks, both ordered by
// position.
func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	board := h.ownedBoard(c, userID)
	if board == nil {
		return
	}

	columns, err := h.boardRepo.GetColumns(c.Request.Context(), board.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}

	response := boardResponse(board)
	response.Columns = make([]ColumnResponse, len(columns))
	for i, column := range columns {
		tasks, err := h.taskRepo.GetByColumnID(c.Request.Context(), column.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
			return
		}

		taskResponses := make([]TaskResponse, len(tasks))
		for j, task := range tasks {
			taskResponses[j] = taskResponse(&task)
		}

		response.Columns[i] = ColumnResponse{
			ID:       column.ID.String(),
			Name:     column.Name,
			Color:    column.Color,
			Position: column.Position,
			Tasks:    taskResponses,
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	board := h.ownedBoard(c, userID)
	if board == nil {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" {
		board.Name = req.Name
	}
	if req.Description != "" {
		board.Description = req.Description
	}

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, boardResponse(board))
}

func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	board := h.ownedBoard(c, userID)
	if board == nil {
		return
	}

	if err := h.boardRepo.Delete(c.Request.Context(), board.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted"})
}
