package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/repository"
)

// FinanceService keeps the center's income/expense ledger. Donations live
// on the same ledger under the donation category.
type FinanceService struct {
	transactions *repository.FinanceRepository
}

// NewFinanceService creates a new FinanceService.
func NewFinanceService(transactions *repository.FinanceRepository) *FinanceService {
	return &FinanceService{transactions: transactions}
}

// Record books a ledger entry on behalf of the actor.
func (s *FinanceService) Record(ctx context.Context, actorID int, req *model.CreateTransactionRequest) (*model.FinancialTransaction, error) {
	t := &model.FinancialTransaction{
		Type:          req.Type,
		Title:         req.Title,
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          req.Date,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		ReceiptNumber: req.ReceiptNumber,
		Counterparty:  req.Counterparty,
		Notes:         req.Notes,
		CreatedBy:     actorID,
	}
	if err := s.transactions.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID retrieves one ledger entry.
func (s *FinanceService) GetByID(ctx context.Context, id int) (*model.FinancialTransaction, error) {
	t, err := s.transactions.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves ledger entries matching the filter, newest first.
func (s *FinanceService) List(ctx context.Context, f repository.FinanceFilter) ([]model.FinancialTransaction, error) {
	return s.transactions.List(ctx, f)
}

// Delete removes a ledger entry.
func (s *FinanceService) Delete(ctx context.Context, id int) error {
	err := s.transactions.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTransactionNotFound
	}
	return err
}

// MonthSummary totals one calendar month of the ledger. An empty month
// means the current one.
func (s *FinanceService) MonthSummary(ctx context.Context, month string) (*model.FinanceSummary, error) {
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	from, to, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	income, expense, donations, err := s.transactions.Summarize(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &model.FinanceSummary{
		Month:     month,
		Income:    income,
		Expense:   expense,
		Donations: donations,
		Net:       income - expense,
	}, nil
}

// monthBounds converts a YYYY-MM key into the first day of that month and
// of the next, both YYYY-MM-DD, forming a half-open date range.
func monthBounds(month string) (from, to string, err error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", ErrInvalidMonth
	}
	return t.Format("2006-01-02"), t.AddDate(0, 1, 0).Format("2006-01-02"), nil
}
