package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lophocvn/lophoc-backend/internal/middleware"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/repository"
	"github.com/lophocvn/lophoc-backend/internal/response"
	"github.com/lophocvn/lophoc-backend/internal/service"
	"github.com/lophocvn/lophoc-backend/internal/validator"
)

type FinanceHandler struct {
	financeService *service.FinanceService
}

func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// List godoc
// GET /api/v1/finance/transactions?type=&category=&from=&to=
func (h *FinanceHandler) List(c *gin.Context) {
	var filter repository.FinanceFilter

	if raw := c.Query("type"); raw != "" {
		tt := model.TransactionType(raw)
		if tt != model.TransactionIncome && tt != model.TransactionExpense {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"type": "Loại giao dịch phải là income hoặc expense."})
			return
		}
		filter.Type = &tt
	}
	if raw := c.Query("category"); raw != "" {
		filter.Category = &raw
	}
	var ok bool
	if filter.From, ok = dateQuery(c, "from"); !ok {
		return
	}
	if filter.To, ok = dateQuery(c, "to"); !ok {
		return
	}

	transactions, err := h.financeService.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if transactions == nil {
		transactions = []model.FinancialTransaction{}
	}
	response.Success(c, http.StatusOK, gin.H{"transactions": transactions})
}

// Get godoc
// GET /api/v1/finance/transactions/:id
func (h *FinanceHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	t, err := h.financeService.GetByID(c.Request.Context(), id)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"transaction": t})
}

// Create godoc
// POST /api/v1/finance/transactions
func (h *FinanceHandler) Create(c *gin.Context) {
	var req model.CreateTransactionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	t, err := h.financeService.Record(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"transaction": t})
}

// Delete godoc
// DELETE /api/v1/finance/transactions/:id
func (h *FinanceHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.financeService.Delete(c.Request.Context(), id); err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Summary godoc
// GET /api/v1/finance/summary?month= (defaults to the current month)
func (h *FinanceHandler) Summary(c *gin.Context) {
	summary, err := h.financeService.MonthSummary(c.Request.Context(), c.Query("month"))
	if err != nil {
		failScheduleErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// dateQuery parses an optional YYYY-MM-DD query param. A false return means
// an error response has already been written.
func dateQuery(c *gin.Context, param string) (*string, bool) {
	raw := c.Query(param)
	if raw == "" {
		return nil, true
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{param: "Ngày phải có định dạng YYYY-MM-DD."})
		return nil, false
	}
	return &raw, true
}
