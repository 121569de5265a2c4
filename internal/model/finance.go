package model

import "time"

// TransactionType splits the ledger into money in and money out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// CategoryDonation files donations on the same ledger; the summary breaks
// them out separately.
const CategoryDonation = "donation"

// FinancialTransaction is one ledger entry. Amounts are whole Vietnamese
// đồng; the currency carries no minor unit in practice.
type FinancialTransaction struct {
	ID            int             `json:"id"`
	Type          TransactionType `json:"type"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Amount        int64           `json:"amount"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Category      string          `json:"category,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	Counterparty  string          `json:"counterparty,omitempty"` // vendor on expenses, payer on income
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     int             `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateTransactionRequest is the payload for recording a ledger entry.
type CreateTransactionRequest struct {
	Type          TransactionType `json:"type" binding:"required,oneof=income expense"`
	Title         string          `json:"title" binding:"required,max=200"`
	Description   string          `json:"description" binding:"omitempty,max=2000"`
	Amount        int64           `json:"amount" binding:"required,min=1"`
	Date          string          `json:"date" binding:"required,datetime=2006-01-02"`
	Category      string          `json:"category" binding:"omitempty,max=100"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=cash bank_transfer card other"`
	ReceiptNumber string          `json:"receipt_number" binding:"omitempty,max=50"`
	Counterparty  string          `json:"counterparty" binding:"omitempty,max=200"`
	Notes         string          `json:"notes" binding:"omitempty,max=2000"`
}

// FinanceSummary totals one calendar month of the ledger.
type FinanceSummary struct {
	Month     string `json:"month"` // YYYY-MM
	Income    int64  `json:"income"`
	Expense   int64  `json:"expense"`
	Donations int64  `json:"donations"`
	Net       int64  `json:"net"`
}
