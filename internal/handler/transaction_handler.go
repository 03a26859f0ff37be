package handler

import (
	"net/http"
	"time"

	"devflow/internal/middleware"
	"devflow/internal/model"
	"devflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	transactionRepo *repository.TransactionRepository
	projectRepo     repository.ProjectRepositoryInterface
}

func NewTransactionHandler(transactionRepo *repository.TransactionRepository, projectRepo repository.ProjectRepositoryInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
	}
}

type TransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	Amount      string  `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Category    string  `json:"category"`
	Notes       string  `json:"notes"`
	ProjectID   *string `json:"project_id"`
}

type TransactionResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Category    string  `json:"category,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
}

func transactionResponse(t *model.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID.String(),
		Type:        t.Type,
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		Date:        t.Date.Format("2006-01-02"),
		Category:    t.Category,
		Notes:       t.Notes,
	}
	if t.ProjectID != nil {
		id := t.ProjectID.String()
		resp.ProjectID = &id
	}
	return resp
}

// parseTransactionRequest validates the payload; on failure the error response
// is already written.
func (h *TransactionHandler) parseTransactionRequest(c *gin.Context, userID uuid.UUID, req *TransactionRequest, t *model.Transaction) bool {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return false
	}
	if !amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than zero"})
		return false
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return false
	}

	t.Type = req.Type
	t.Amount = amount
	t.Description = req.Description
	t.Date = date
	t.Category = req.Category
	t.Notes = req.Notes

	// A transaction without a project is a general income/expense.
	t.ProjectID = nil
	if req.ProjectID != nil && *req.ProjectID != "" {
		projectID, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
			return false
		}
		project, err := h.projectRepo.GetOwned(c.Request.Context(), projectID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
			return false
		}
		if project == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return false
		}
		t.ProjectID = &projectID
	}

	return true
}

func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	transaction := &model.Transaction{UserID: userID}
	if !h.parseTransactionRequest(c, userID, &req, transaction) {
		return
	}

	if err := h.transactionRepo.Create(c.Request.Context(), transaction); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	c.JSON(http.StatusCreated, transactionResponse(transaction))
}

// listFilter builds a TransactionFilter from the optional start_date,
// end_date and project_id query parameters.
func listFilter(c *gin.Context) (repository.TransactionFilter, bool) {
	var filter repository.TransactionFilter

	if s := c.Query("start_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, use YYYY-MM-DD"})
			return filter, false
		}
		filter.Start = t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, use YYYY-MM-DD"})
			return filter, false
		}
		// Inclusive end of day.
		filter.End = t.Add(24*time.Hour - time.Second)
	}
	if s := c.Query("project_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project_id format"})
			return filter, false
		}
		filter.ProjectID = &id
	}

	return filter, true
}

func (h *TransactionHandler) GetAll(c *gin.Context) {
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

	response := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		response[i] = transactionResponse(&t)
	}

	c.JSON(http.StatusOK, response)
}

func (h *TransactionHandler) ownedTransaction(c *gin.Context, userID uuid.UUID) *model.Transaction {
	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID format"})
		return nil
	}

	transaction, err := h.transactionRepo.GetByID(c.Request.Context(), transactionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return nil
	}
	if transaction == nil || transaction.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return nil
	}
	return transaction
}

func (h *TransactionHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	transaction := h.ownedTransaction(c, userID)
	if transaction == nil {
		return
	}

	c.JSON(http.StatusOK, transactionResponse(transaction))
}

func (h *TransactionHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	transaction := h.ownedTransaction(c, userID)
	if transaction == nil {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !h.parseTransactionRequest(c, userID, &req, transaction) {
		return
	}

	if err := h.transactionRepo.Update(c.Request.Context(), transaction); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	c.JSON(http.StatusOK, transactionResponse(transaction))
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	transaction := h.ownedTransaction(c, userID)
	if transaction == nil {
		return
	}

	if err := h.transactionRepo.Delete(c.Request.Context(), transaction.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

type TransactionStatsResponse struct {
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	Balance       string `json:"balance"`
}

// GetStats sums income and expenses for the caller, optionally narrowed by
// start_date/end_date/project_id query parameters.
func (h *TransactionHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	filter, ok := listFilter(c)
	if !ok {
		return
	}

	income, err := h.transactionRepo.SumByType(c.Request.Context(), userID, model.TypeIncome, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}
	expenses, err := h.transactionRepo.SumByType(c.Request.Context(), userID, model.TypeExpense, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, TransactionStatsResponse{
		TotalIncome:   income.StringFixed(2),
		TotalExpenses: expenses.StringFixed(2),
		Balance:       income.Sub(expenses).StringFixed(2),
	})
}
