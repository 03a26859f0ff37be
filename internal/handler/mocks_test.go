package handler_test

import (
	"context"
	"time"

	"devflow/internal/middleware"
	"devflow/internal/model"
	"devflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// authStub injects an authenticated user the way JWTAuthMiddleware would.
func authStub(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	project := args.Get(0)
	if project == nil {
		return nil, args.Error(1)
	}
	return project.(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id, userID)
	project := args.Get(0)
	if project == nil {
		return nil, args.Error(1)
	}
	return project.(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) CountByStatus(ctx context.Context, userID uuid.UUID, status string) (int64, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) CreateWithDefaultColumns(ctx context.Context, board *model.Board) ([]model.BoardColumn, error) {
	args := m.Called(ctx, board)
	columns := args.Get(0)
	if columns == nil {
		return nil, args.Error(1)
	}
	return columns.([]model.BoardColumn), args.Error(1)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) GetByProject(ctx context.Context, projectID uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]model.Board), args.Error(1)
}

func (m *MockBoardRepository) GetColumns(ctx context.Context, boardID uuid.UUID) ([]model.BoardColumn, error) {
	args := m.Called(ctx, boardID)
	return args.Get(0).([]model.BoardColumn), args.Error(1)
}

func (m *MockBoardRepository) GetColumnByID(ctx context.Context, id uuid.UUID) (*model.BoardColumn, error) {
	args := m.Called(ctx, id)
	column := args.Get(0)
	if column == nil {
		return nil, args.Error(1)
	}
	return column.(*model.BoardColumn), args.Error(1)
}

func (m *MockBoardRepository) Update(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, columnID)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) NextPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	args := m.Called(ctx, columnID)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) MoveTask(ctx context.Context, taskID uuid.UUID, columnID uuid.UUID, newPosition int) error {
	args := m.Called(ctx, taskID, columnID, newPosition)
	return args.Error(0)
}

type MockTimeEntryRepository struct {
	mock.Mock
}

func (m *MockTimeEntryRepository) Create(ctx context.Context, entry *model.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TimeEntry, error) {
	args := m.Called(ctx, id)
	entry := args.Get(0)
	if entry == nil {
		return nil, args.Error(1)
	}
	return entry.(*model.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) GetByUser(ctx context.Context, userID uuid.UUID, filter repository.TimeEntryFilter) ([]model.TimeEntry, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]model.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) Update(ctx context.Context, entry *model.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) GetRunning(ctx context.Context, userID uuid.UUID) (*model.TimeEntry, error) {
	args := m.Called(ctx, userID)
	entry := args.Get(0)
	if entry == nil {
		return nil, args.Error(1)
	}
	return entry.(*model.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) SumMinutes(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	args := m.Called(ctx, userID, start, end)
	return args.Int(0), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	t := args.Get(0)
	if t == nil {
		return nil, args.Error(1)
	}
	return t.(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByUser(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]model.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, t *model.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) SumByType(ctx context.Context, userID uuid.UUID, txType string, filter repository.TransactionFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, txType, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
