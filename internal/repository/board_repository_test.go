package repository_test

import (
	"context"
	"testing"

	"devflow/internal/model"
	"devflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBoardRepository_CreateWithDefaultColumns(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()
	board := &model.Board{
		ID:        boardID,
		UserID:    uuid.New(),
		ProjectID: uuid.New(),
		Name:      "Sprint Board",
	}

	// Board insert plus the four starter columns, all in one transaction.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(boardID.String()))
	for range model.DefaultColumns() {
		mock.ExpectQuery(`INSERT INTO "board_columns"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	}
	mock.ExpectCommit()

	// Act
	columns, err := boardRepo.CreateWithDefaultColumns(context.Background(), board)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, columns, 4)
	assert.Equal(t, "To Do", columns[0].Name)
	assert.Equal(t, "In Progress", columns[1].Name)
	assert.Equal(t, "In Review", columns[2].Name)
	assert.Equal(t, "Done", columns[3].Name)
	for i, column := range columns {
		assert.Equal(t, i, column.Position)
		assert.Equal(t, boardID, column.BoardID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_CreateWithDefaultColumns_ColumnInsertFails(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	board := &model.Board{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ProjectID: uuid.New(),
		Name:      "Sprint Board",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(board.ID.String()))
	mock.ExpectQuery(`INSERT INTO "board_columns"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	// Act
	columns, err := boardRepo.CreateWithDefaultColumns(context.Background(), board)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, columns)
	assert.NoError(t, mock.ExpectationsWereMet())
}
