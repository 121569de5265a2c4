package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lophocvn/lophoc-backend/internal/model"
)

const transactionColumns = `id, type, title, description, amount,
	to_char(date, 'YYYY-MM-DD'), category, payment_method, receipt_number,
	counterparty, notes, created_by, created_at, updated_at`

// FinanceFilter narrows a ledger listing. Nil fields mean no restriction;
// From/To are YYYY-MM-DD, From inclusive and To exclusive.
type FinanceFilter struct {
	Type     *model.TransactionType
	Category *string
	From     *string
	To       *string
}

// FinanceRepository handles ledger data access.
type FinanceRepository struct {
	db Querier
}

// NewFinanceRepository creates a new FinanceRepository.
func NewFinanceRepository(pool *pgxpool.Pool) *FinanceRepository {
	return &FinanceRepository{db: pool}
}

// Create inserts a ledger entry.
func (r *FinanceRepository) Create(ctx context.Context, t *model.FinancialTransaction) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO financial_transactions
		 (type, title, description, amount, date, category, payment_method,
		  receipt_number, counterparty, notes, created_by)
		 VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		t.Type, t.Title, t.Description, t.Amount, t.Date, t.Category,
		t.PaymentMethod, t.ReceiptNumber, t.Counterparty, t.Notes, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID retrieves one ledger entry.
func (r *FinanceRepository) GetByID(ctx context.Context, id int) (*model.FinancialTransaction, error) {
	t := &model.FinancialTransaction{}
	err := r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM financial_transactions WHERE id = $1`, id,
	).Scan(&t.ID, &t.Type, &t.Title, &t.Description, &t.Amount, &t.Date,
		&t.Category, &t.PaymentMethod, &t.ReceiptNumber, &t.Counterparty,
		&t.Notes, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves ledger entries matching the filter, newest first.
func (r *FinanceRepository) List(ctx context.Context, f FinanceFilter) ([]model.FinancialTransaction, error) {
	conds := []string{"TRUE"}
	var args []any

	if f.Type != nil {
		args = append(args, *f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Category != nil {
		args = append(args, *f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("date >= $%d::date", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("date < $%d::date", len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM financial_transactions
		WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY date DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []model.FinancialTransaction
	for rows.Next() {
		var t model.FinancialTransaction
		if err := rows.Scan(&t.ID, &t.Type, &t.Title, &t.Description, &t.Amount,
			&t.Date, &t.Category, &t.PaymentMethod, &t.ReceiptNumber,
			&t.Counterparty, &t.Notes, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// Delete removes a ledger entry. Ledger rows are hard-deleted; the books
// keep no tombstones.
func (r *FinanceRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM financial_transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Summarize totals the ledger for [from, to). Donations are the subset of
// entries filed under the donation category.
func (r *FinanceRepository) Summarize(ctx context.Context, from, to string) (income, expense, donations int64, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT
		   COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
		   COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0),
		   COALESCE(SUM(amount) FILTER (WHERE category = $3), 0)
		 FROM financial_transactions
		 WHERE date >= $1::date AND date < $2::date`,
		from, to, model.CategoryDonation,
	).Scan(&income, &expense, &donations)
	return income, expense, donations, err
}
