package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"time"

	"devflow/internal/middleware"
	"devflow/internal/repository"
	"devflow/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type ExportHandler struct {
	transactionRepo *repository.TransactionRepository
	timeEntryRepo   repository.TimeEntryRepositoryInterface
	projectRepo     repository.ProjectRepositoryInterface
}

func NewExportHandler(
	transactionRepo *repository.TransactionRepository,
	timeEntryRepo repository.TimeEntryRepositoryInterface,
	projectRepo repository.ProjectRepositoryInterface,
) *ExportHandler {
	return &ExportHandler{
		transactionRepo: transactionRepo,
		timeEntryRepo:   timeEntryRepo,
		projectRepo:     projectRepo,
	}
}

// TransactionsExcel streams the caller's transactions as a styled .xlsx
// workbook. The same start_date/end_date/project_id filters as the list
// endpoint apply.
func (h *ExportHandler) TransactionsExcel(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	filter, ok := listFilter(c)
	if !ok {
		return
	}

	transactions, err := h.transactionRepo.GetByUser(c.Request.Context(), userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}

	projectNames := map[string]string{}
	projects, err := h.projectRepo.GetByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}
	for _, p := range projects {
		projectNames[p.ID.String()] = p.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Transactions"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 40)
	f.SetColWidth(sheetName, "E", "E", 25)

	headers := []string{"Date", "Type", "Amount", "Description", "Project"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, t := range transactions {
		row := i + 2
		projectName := ""
		if t.ProjectID != nil {
			projectName = projectNames[t.ProjectID.String()]
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Amount.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), projectName)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), dataStyle)
	}

	filename := fmt.Sprintf("transactions_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate Excel file"})
		return
	}
}

// TimeEntriesCSV streams the caller's completed time entries as CSV.
func (h *ExportHandler) TimeEntriesCSV(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	filter, ok := listFilter(c)
	if !ok {
		return
	}

	entries, err := h.timeEntryRepo.GetByUser(c.Request.Context(), userID, repository.TimeEntryFilter{
		Start:     filter.Start,
		End:       filter.End,
		ProjectID: filter.ProjectID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time entries"})
		return
	}

	filename := fmt.Sprintf("time_entries_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Date", "Project", "Description", "Start", "End", "Duration"})
	// csv.Writer is sticky: the first write error is reported by Error()
	// after Flush.
	for _, e := range entries {
		end := ""
		if e.EndTime != nil {
			end = e.EndTime.Format("15:04")
		}
		minutes := 0
		if e.DurationMinutes != nil {
			minutes = *e.DurationMinutes
		}
		_ = w.Write([]string{
			e.Date.Format("2006-01-02"),
			e.Project.Name,
			e.Description,
			e.StartTime.Format("15:04"),
			end,
			timesheet.FormatMinutes(minutes),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("❌ CSV export failed mid-stream: %v", err)
	}
}
