// Package report renders the six textual report variants from transaction and
// time-entry data. Everything here is read-side: builders take already-fetched
// rows and return text.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"devflow/internal/model"
	"devflow/internal/timesheet"

	"github.com/shopspring/decimal"
)

// Report types.
const (
	TypeProject   = "project"
	TypeFinancial = "financial"
	TypeHours     = "hours"
	TypeInvoice   = "invoice"
	TypeSummary   = "summary"
)

func ValidType(t string) bool {
	switch t {
	case TypeProject, TypeFinancial, TypeHours, TypeInvoice, TypeSummary:
		return true
	}
	return false
}

// invoiceNeedsProject is returned as the report body when an invoice is
// requested for the all-projects filter.
const invoiceNeedsProject = "ERROR: To generate an invoice, select a specific project."

// Range is the inclusive date window a report covers.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days is the number of calendar days in the range, inclusive on both ends.
// Dates are normalized to UTC midnights first so a DST transition inside the
// range cannot shift the count.
func (r Range) Days() int {
	start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

func money(d decimal.Decimal) string {
	return "$ " + d.StringFixed(2)
}

// Financial renders income and expense totals with the resulting balance.
func Financial(transactions []model.Transaction, rng Range) string {
	content := []string{
		"FINANCIAL REPORT",
		strings.Repeat("=", 50),
		"Period: " + rng.String(),
		"",
	}

	content = append(content, "INCOME", strings.Repeat("-", 15))
	income := decimal.Zero
	var incomeLines []string
	expense := decimal.Zero
	var expenseLines []string
	for _, t := range transactions {
		line := fmt.Sprintf("  %s - %s: %s", t.Date.Format("2006-01-02"), t.Description, money(t.Amount))
		switch t.Type {
		case model.TypeIncome:
			income = income.Add(t.Amount)
			incomeLines = append(incomeLines, line)
		case model.TypeExpense:
			expense = expense.Add(t.Amount)
			expenseLines = append(expenseLines, line)
		}
	}

	if len(incomeLines) == 0 {
		content = append(content, "  No income found in the period.")
	} else {
		content = append(content, incomeLines...)
	}
	content = append(content, "", "Total Income: "+money(income), "")

	content = append(content, "EXPENSES", strings.Repeat("-", 15))
	if len(expenseLines) == 0 {
		content = append(content, "  No expenses found in the period.")
	} else {
		content = append(content, expenseLines...)
	}
	content = append(content, "", "Total Expenses: "+money(expense), "")

	content = append(content,
		"SUMMARY",
		strings.Repeat("-", 15),
		"Total Income: "+money(income),
		"Total Expenses: "+money(expense),
		"Balance: "+money(income.Sub(expense)),
	)

	return strings.Join(content, "\n")
}

// Hours renders worked-time totals. With allProjects set, entries are grouped
// per project with subtotals; the overall section always carries the total,
// the entry count and the average per inclusive day.
func Hours(entries []model.TimeEntry, rng Range, allProjects bool) string {
	content := []string{
		"HOURS REPORT",
		strings.Repeat("=", 50),
		"Period: " + rng.String(),
		"",
	}

	if len(entries) == 0 {
		content = append(content, "No time entries found in the period.")
		return strings.Join(content, "\n")
	}

	totalMinutes := 0
	if allProjects {
		grouped := map[string][]model.TimeEntry{}
		for _, e := range entries {
			grouped[e.Project.Name] = append(grouped[e.Project.Name], e)
		}
		names := make([]string, 0, len(grouped))
		for name := range grouped {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			content = append(content, "Project: "+name, strings.Repeat("-", 25))
			subtotal := 0
			for _, e := range grouped[name] {
				minutes := 0
				if e.DurationMinutes != nil {
					minutes = *e.DurationMinutes
				}
				subtotal += minutes
				content = append(content, fmt.Sprintf("  %s - %s (%s)",
					e.Date.Format("2006-01-02"), e.Description, timesheet.FormatMinutes(minutes)))
			}
			totalMinutes += subtotal
			content = append(content, "", "  Subtotal: "+timesheet.FormatMinutes(subtotal), "")
		}
	} else {
		for _, e := range entries {
			minutes := 0
			if e.DurationMinutes != nil {
				minutes = *e.DurationMinutes
			}
			totalMinutes += minutes
			content = append(content, fmt.Sprintf("  %s - %s (%s)",
				e.Date.Format("2006-01-02"), e.Description, timesheet.FormatMinutes(minutes)))
		}
		content = append(content, "")
	}

	content = append(content,
		strings.Repeat("=", 50),
		"Total Hours Worked: "+timesheet.FormatMinutes(totalMinutes),
		fmt.Sprintf("Entries: %d", len(entries)),
	)

	if totalMinutes > 0 {
		avg := totalMinutes / rng.Days()
		content = append(content, "Average per Day: "+timesheet.FormatMinutes(avg))
	}

	return strings.Join(content, "\n")
}

// Invoice renders a project invoice from its time entries. A nil project
// means the all-projects filter was requested, which an invoice does not
// support.
func Invoice(project *model.Project, client *model.Client, entries []model.TimeEntry, rng Range, now time.Time) string {
	if project == nil {
		return invoiceNeedsProject
	}

	content := []string{
		"INVOICE",
		strings.Repeat("=", 50),
		"Issue Date: " + now.Format("2006-01-02"),
		"Service Period: " + rng.String(),
		"",
		"PROJECT",
		strings.Repeat("-", 25),
		"Project: " + project.Name,
	}
	if client != nil {
		content = append(content, "Client: "+client.Name)
		if client.Email != "" {
			content = append(content, "Email: "+client.Email)
		}
		if client.Phone != "" {
			content = append(content, "Phone: "+client.Phone)
		}
	}
	content = append(content, "", "SERVICES RENDERED", strings.Repeat("-", 25))

	totalMinutes := 0
	if len(entries) == 0 {
		content = append(content, "  No services recorded in the period")
	} else {
		for _, e := range entries {
			minutes := 0
			if e.DurationMinutes != nil {
				minutes = *e.DurationMinutes
			}
			totalMinutes += minutes
			content = append(content, fmt.Sprintf("  %s - %s (%s)",
				e.Date.Format("2006-01-02"), e.Description, timesheet.FormatMinutes(minutes)))
		}
	}

	content = append(content,
		"",
		"Total Hours: "+timesheet.FormatMinutes(totalMinutes),
		"",
		"AMOUNTS",
		strings.Repeat("-", 15),
	)

	if project.Budget != nil {
		content = append(content, "Project Amount: "+money(*project.Budget))
		if totalMinutes > 0 {
			hours := decimal.NewFromInt(int64(totalMinutes)).Div(decimal.NewFromInt(60))
			rate := project.Budget.Div(hours)
			content = append(content,
				"Hourly Rate: "+money(rate),
				"Proportional Amount: "+money(rate.Mul(hours)),
			)
		}
	} else {
		content = append(content, "Project amount not set")
	}

	content = append(content,
		"",
		"NOTES",
		strings.Repeat("-", 15),
		"This invoice covers the services rendered in the period above.",
		"Payment due within 30 days.",
	)

	return strings.Join(content, "\n")
}

// Summary renders the general overview: project status counts, financial
// totals and hours worked.
func Summary(projects []model.Project, transactions []model.Transaction, entries []model.TimeEntry, rng Range, now time.Time) string {
	content := []string{
		"GENERAL SUMMARY",
		strings.Repeat("=", 50),
		"Period: " + rng.String(),
		"Generated: " + now.Format("2006-01-02 15:04"),
		"",
		"PROJECTS",
		strings.Repeat("-", 15),
		fmt.Sprintf("Total Projects: %d", len(projects)),
	}

	statusCount := map[string]int{}
	for _, p := range projects {
		statusCount[p.Status]++
	}
	statuses := make([]string, 0, len(statusCount))
	for s := range statusCount {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		content = append(content, fmt.Sprintf("  %s: %d", s, statusCount[s]))
	}

	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case model.TypeIncome:
			income = income.Add(t.Amount)
		case model.TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}

	content = append(content,
		"",
		"FINANCES",
		strings.Repeat("-", 15),
		"Total Income: "+money(income),
		"Total Expenses: "+money(expense),
		"Balance: "+money(income.Sub(expense)),
		"",
		"HOURS",
		strings.Repeat("-", 15),
	)

	totalMinutes := 0
	for _, e := range entries {
		if e.DurationMinutes != nil {
			totalMinutes += *e.DurationMinutes
		}
	}
	content = append(content,
		"Total Hours Worked: "+timesheet.FormatMinutes(totalMinutes),
		fmt.Sprintf("Time Entries: %d", len(entries)),
	)

	return strings.Join(content, "\n")
}

// Project renders the per-project report: header data plus that project's
// finances and hours in the period.
func Project(project *model.Project, client *model.Client, transactions []model.Transaction, entries []model.TimeEntry, rng Range) string {
	if project == nil {
		return "ERROR: Project not found."
	}

	content := []string{
		"PROJECT REPORT",
		strings.Repeat("=", 50),
		"Project: " + project.Name,
		"Status: " + project.Status,
	}
	if client != nil {
		content = append(content, "Client: "+client.Name)
	}
	if project.Budget != nil {
		content = append(content, "Budget: "+money(*project.Budget))
	}
	content = append(content, "Period: "+rng.String(), "")

	content = append(content, "FINANCES", strings.Repeat("-", 15))
	if len(transactions) == 0 {
		content = append(content, "  No transactions found in the period.")
	} else {
		income := decimal.Zero
		expense := decimal.Zero
		for _, t := range transactions {
			switch t.Type {
			case model.TypeIncome:
				income = income.Add(t.Amount)
			case model.TypeExpense:
				expense = expense.Add(t.Amount)
			}
			content = append(content, fmt.Sprintf("  %s - %s: %s (%s)",
				t.Date.Format("2006-01-02"), t.Description, money(t.Amount), t.Type))
		}
		content = append(content,
			"",
			"  Total Income: "+money(income),
			"  Total Expenses: "+money(expense),
			"  Balance: "+money(income.Sub(expense)),
		)
	}

	content = append(content, "", "HOURS", strings.Repeat("-", 15))
	if len(entries) == 0 {
		content = append(content, "  No time entries found in the period.")
	} else {
		totalMinutes := 0
		for _, e := range entries {
			minutes := 0
			if e.DurationMinutes != nil {
				minutes = *e.DurationMinutes
			}
			totalMinutes += minutes
			content = append(content, fmt.Sprintf("  %s - %s (%s)",
				e.Date.Format("2006-01-02"), e.Description, timesheet.FormatMinutes(minutes)))
		}
		content = append(content, "", "  Total Hours: "+timesheet.FormatMinutes(totalMinutes))
	}

	return strings.Join(content, "\n")
}
