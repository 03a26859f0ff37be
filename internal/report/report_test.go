package report_test

import (
	"strings"
	"testing"
	"time"

	"devflow/internal/model"
	"devflow/internal/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testRange() report.Range {
	return report.Range{
		Start: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
}

func tx(txType string, amount string, day int) model.Transaction {
	return model.Transaction{
		Type:        txType,
		Amount:      decimal.RequireFromString(amount),
		Description: "test transaction",
		Date:        time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC),
	}
}

func entry(minutes, day int) model.TimeEntry {
	return model.TimeEntry{
		Description:     "development work",
		Date:            time.Date(2025, time.March, day, 9, 0, 0, 0, time.UTC),
		DurationMinutes: &minutes,
	}
}

func TestRange_DaysInclusive(t *testing.T) {
	assert.Equal(t, 31, testRange().Days())

	oneDay := report.Range{
		Start: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 1, oneDay.Days())
}

func TestRange_DaysAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// 2025-03-09 springs forward, so the middle day is only 23 wall-clock
	// hours long. The count must still be three calendar days.
	rng := report.Range{
		Start: time.Date(2025, time.March, 8, 0, 0, 0, 0, loc),
		End:   time.Date(2025, time.March, 10, 0, 0, 0, 0, loc),
	}
	assert.Equal(t, 3, rng.Days())
}

func TestFinancial_Totals(t *testing.T) {
	transactions := []model.Transaction{
		tx(model.TypeIncome, "1000.00", 3),
		tx(model.TypeIncome, "250.50", 10),
		tx(model.TypeExpense, "400.25", 15),
	}

	text := report.Financial(transactions, testRange())

	assert.Contains(t, text, "Total Income: $ 1250.50")
	assert.Contains(t, text, "Total Expenses: $ 400.25")
	assert.Contains(t, text, "Balance: $ 850.25")
}

func TestFinancial_EmptyRendersExplicitLines(t *testing.T) {
	text := report.Financial(nil, testRange())

	assert.Contains(t, text, "No income found in the period.")
	assert.Contains(t, text, "No expenses found in the period.")
	assert.Contains(t, text, "Balance: $ 0.00")
}

func TestHours_TotalsAndAverage(t *testing.T) {
	entries := []model.TimeEntry{entry(120, 3), entry(60, 4), entry(130, 5)}
	for i := range entries {
		entries[i].Project = model.Project{Name: "Site"}
	}

	text := report.Hours(entries, testRange(), false)

	assert.Contains(t, text, "Total Hours Worked: 5h 10m")
	assert.Contains(t, text, "Entries: 3")
	// 310 minutes over 31 inclusive days.
	assert.Contains(t, text, "Average per Day: 0h 10m")
}

func TestHours_GroupsByProjectForAllProjects(t *testing.T) {
	a := entry(60, 3)
	a.Project = model.Project{Name: "Alpha"}
	b := entry(90, 4)
	b.Project = model.Project{Name: "Beta"}

	text := report.Hours([]model.TimeEntry{a, b}, testRange(), true)

	assert.Contains(t, text, "Project: Alpha")
	assert.Contains(t, text, "Project: Beta")
	assert.Contains(t, text, "Subtotal: 1h 0m")
	assert.Contains(t, text, "Subtotal: 1h 30m")
	assert.Contains(t, text, "Total Hours Worked: 2h 30m")
}

func TestHours_Empty(t *testing.T) {
	text := report.Hours(nil, testRange(), true)
	assert.Contains(t, text, "No time entries found in the period.")
}

func TestInvoice_ImpliedHourlyRate(t *testing.T) {
	budget := decimal.RequireFromString("1000.00")
	project := &model.Project{Name: "Site Redesign", Budget: &budget}
	client := &model.Client{Name: "Acme", Email: "billing@acme.test"}

	// 600 minutes = 10 hours against a 1000.00 budget.
	entries := []model.TimeEntry{entry(600, 12)}

	text := report.Invoice(project, client, entries, testRange(), time.Date(2025, time.April, 1, 10, 0, 0, 0, time.UTC))

	assert.Contains(t, text, "Total Hours: 10h 0m")
	assert.Contains(t, text, "Hourly Rate: $ 100.00")
	assert.Contains(t, text, "Proportional Amount: $ 1000.00")
	assert.Contains(t, text, "Client: Acme")
}

func TestInvoice_NoBudgetOmitsRate(t *testing.T) {
	project := &model.Project{Name: "Site Redesign"}

	text := report.Invoice(project, nil, []model.TimeEntry{entry(600, 12)}, testRange(), time.Now())

	assert.Contains(t, text, "Project amount not set")
	assert.NotContains(t, text, "Hourly Rate")
}

func TestInvoice_AllProjectsIsErrorText(t *testing.T) {
	text := report.Invoice(nil, nil, nil, testRange(), time.Now())

	assert.True(t, strings.HasPrefix(text, "ERROR:"))
	assert.Contains(t, text, "specific project")
}

func TestInvoice_NoEntries(t *testing.T) {
	project := &model.Project{Name: "Site Redesign"}

	text := report.Invoice(project, nil, nil, testRange(), time.Now())

	assert.Contains(t, text, "No services recorded in the period")
	assert.Contains(t, text, "Total Hours: 0h 0m")
}

func TestSummary_StatusCountsAndTotals(t *testing.T) {
	projects := []model.Project{
		{Status: model.StatusActive},
		{Status: model.StatusActive},
		{Status: model.StatusCompleted},
	}
	transactions := []model.Transaction{
		tx(model.TypeIncome, "500.00", 3),
		tx(model.TypeExpense, "120.00", 4),
	}
	entries := []model.TimeEntry{entry(90, 5)}

	text := report.Summary(projects, transactions, entries, testRange(), time.Now())

	assert.Contains(t, text, "Total Projects: 3")
	assert.Contains(t, text, "active: 2")
	assert.Contains(t, text, "completed: 1")
	assert.Contains(t, text, "Balance: $ 380.00")
	assert.Contains(t, text, "Total Hours Worked: 1h 30m")
}

func TestProject_EmptySections(t *testing.T) {
	project := &model.Project{Name: "Site Redesign", Status: model.StatusActive}

	text := report.Project(project, nil, nil, nil, testRange())

	assert.Contains(t, text, "No transactions found in the period.")
	assert.Contains(t, text, "No time entries found in the period.")
}
