package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devflow/internal/handler"
	"devflow/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupExportTest(userID uuid.UUID) (*gin.Engine, *MockTimeEntryRepository, *MockProjectRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.Use(authStub(userID))

	entryRepo := new(MockTimeEntryRepository)
	projectRepo := new(MockProjectRepository)
	exportHandler := handler.NewExportHandler(nil, entryRepo, projectRepo)

	r.GET("/export/time-entries/csv", exportHandler.TimeEntriesCSV)

	return r, entryRepo, projectRepo
}

func TestTimeEntriesCSV_RendersRows(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, entryRepo, _ := setupExportTest(userID)

	minutes := 90
	end := time.Date(2025, time.March, 31, 10, 30, 0, 0, time.Local)
	entryRepo.On("GetByUser", mock.Anything, userID, entryFilterEnding(2025, time.March, 31)).
		Return([]model.TimeEntry{{
			Description:     "Wrap-up",
			Date:            time.Date(2025, time.March, 31, 9, 0, 0, 0, time.Local),
			StartTime:       time.Date(2025, time.March, 31, 9, 0, 0, 0, time.Local),
			EndTime:         &end,
			DurationMinutes: &minutes,
			Project:         model.Project{Name: "Website"},
		}}, nil)

	req, _ := http.NewRequest("GET", "/export/time-entries/csv?start_date=2025-03-01&end_date=2025-03-31", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/csv", resp.Header().Get("Content-Type"))

	body := resp.Body.String()
	assert.Contains(t, body, "Date,Project,Description,Start,End,Duration")
	assert.Contains(t, body, "2025-03-31,Website,Wrap-up,09:00,10:30,1h 30m")
	entryRepo.AssertExpectations(t)
}
