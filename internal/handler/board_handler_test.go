package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devflow/internal/handler"
	"devflow/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupBoardTest(userID uuid.UUID) (*gin.Engine, *MockBoardRepository, *MockProjectRepository, *MockTaskRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.Use(authStub(userID))

	boardRepo := new(MockBoardRepository)
	projectRepo := new(MockProjectRepository)
	taskRepo := new(MockTaskRepository)
	boardHandler := handler.NewBoardHandler(boardRepo, projectRepo, taskRepo)

	r.POST("/boards", boardHandler.Create)
	r.GET("/boards/:id", boardHandler.GetByID)

	return r, boardRepo, projectRepo, taskRepo
}

func TestBoardCreate_StartsWithFourColumns(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, boardRepo, projectRepo, _ := setupBoardTest(userID)

	projectID := uuid.New()
	boardID := uuid.New()

	projectRepo.On("GetOwned", mock.Anything, projectID, userID).
		Return(&model.Project{ID: projectID, UserID: userID, Name: "Website"}, nil)

	defaultColumns := make([]model.BoardColumn, 0, 4)
	for _, def := range model.DefaultColumns() {
		defaultColumns = append(defaultColumns, model.BoardColumn{
			ID:       uuid.New(),
			BoardID:  boardID,
			Name:     def.Name,
			Color:    def.Color,
			Position: def.Position,
		})
	}
	boardRepo.On("CreateWithDefaultColumns", mock.Anything, mock.AnythingOfType("*model.Board")).
		Run(func(args mock.Arguments) {
			board := args.Get(1).(*model.Board)
			board.ID = boardID
		}).
		Return(defaultColumns, nil)

	reqBody := handler.CreateBoardRequest{
		Name:      "Sprint Board",
		ProjectID: projectID.String(),
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/boards", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var response handler.BoardResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, boardID.String(), response.ID)
	assert.Len(t, response.Columns, 4)
	assert.Equal(t, "To Do", response.Columns[0].Name)
	assert.Equal(t, "#FF9800", response.Columns[0].Color)
	assert.Equal(t, "Done", response.Columns[3].Name)
	assert.Equal(t, 3, response.Columns[3].Position)

	boardRepo.AssertExpectations(t)
	projectRepo.AssertExpectations(t)
}

func TestBoardCreate_ProjectNotOwned(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, boardRepo, projectRepo, _ := setupBoardTest(userID)

	projectID := uuid.New()
	projectRepo.On("GetOwned", mock.Anything, projectID, userID).Return(nil, nil)

	reqBody := handler.CreateBoardRequest{
		Name:      "Sprint Board",
		ProjectID: projectID.String(),
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/boards", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	boardRepo.AssertNotCalled(t, "CreateWithDefaultColumns", mock.Anything, mock.Anything)
	projectRepo.AssertExpectations(t)
}

func TestBoardCreate_MissingName(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, boardRepo, _, _ := setupBoardTest(userID)

	jsonBody, _ := json.Marshal(map[string]string{"project_id": uuid.New().String()})
	req, _ := http.NewRequest("POST", "/boards", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	boardRepo.AssertNotCalled(t, "CreateWithDefaultColumns", mock.Anything, mock.Anything)
}

func TestBoardGetByID_NestsColumnsAndTasks(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, boardRepo, _, taskRepo := setupBoardTest(userID)

	boardID := uuid.New()
	columnID := uuid.New()

	boardRepo.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, UserID: userID, ProjectID: uuid.New(), Name: "Sprint Board"}, nil)
	boardRepo.On("GetColumns", mock.Anything, boardID).
		Return([]model.BoardColumn{{ID: columnID, BoardID: boardID, Name: "To Do", Color: "#FF9800", Position: 0}}, nil)
	taskRepo.On("GetByColumnID", mock.Anything, columnID).
		Return([]model.Task{
			{ID: uuid.New(), ColumnID: columnID, Title: "Design homepage", Priority: model.PriorityHigh, Position: 0},
			{ID: uuid.New(), ColumnID: columnID, Title: "Set up CI", Priority: model.PriorityMedium, Position: 1},
		}, nil)

	req, _ := http.NewRequest("GET", "/boards/"+boardID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.BoardResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Columns, 1)
	assert.Len(t, response.Columns[0].Tasks, 2)
	assert.Equal(t, "Design homepage", response.Columns[0].Tasks[0].Title)
	assert.Equal(t, 1, response.Columns[0].Tasks[1].Position)

	boardRepo.AssertExpectations(t)
	taskRepo.AssertExpectations(t)
}
