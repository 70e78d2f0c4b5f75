package domain

import (
	"math"
	"time"

	"github.com/hrslabs/kiffscore/internal/finance/errors"
)

const (
	DirectionCredit   = "credit"
	DirectionDebit    = "debit"
	DirectionTransfer = "transfert"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type Transaction struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	BankID       *string   `json:"bank_id,omitempty"`
	CategoryID   *string   `json:"category_id,omitempty"`
	BaseCategory *string   `json:"base_category,omitempty"`
	Amount       float64   `json:"amount"`
	Direction    string    `json:"type"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description,omitempty"`
}

// TransactionPatch carries a partial update. Nil fields are left untouched.
// The direction is immutable after creation, so it is not part of the patch.
type TransactionPatch struct {
	BankID       *string    `json:"bank_id"`
	CategoryID   *string    `json:"category_id"`
	BaseCategory *string    `json:"base_category"`
	Amount       *float64   `json:"amount"`
	Status       *string    `json:"status"`
	Date         *time.Time `json:"date"`
	Description  *string    `json:"description"`
}

// BalanceSign returns the signed direction of the transaction's contribution
// to its bank account balance. Transfers carry no contribution: they are
// accepted and stored but never move a balance.
func (t *Transaction) BalanceSign() float64 {
	switch t.Direction {
	case DirectionCredit:
		return 1
	case DirectionDebit:
		return -1
	default:
		return 0
	}
}

func (t *Transaction) Validate() error {
	if t.Amount < 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return errors.NewValidationError("Amount must be a positive number")
	}
	if t.Direction != DirectionCredit && t.Direction != DirectionDebit && t.Direction != DirectionTransfer {
		return errors.NewValidationError("Type must be 'credit', 'debit' or 'transfert'")
	}
	if t.Status != StatusPending && t.Status != StatusCompleted && t.Status != StatusFailed {
		return errors.NewValidationError("Status must be 'pending', 'completed' or 'failed'")
	}
	if t.Date.IsZero() {
		return errors.NewValidationError("Date is required")
	}
	if len(t.Description) > 1024 {
		return errors.NewValidationError("Description must be of length less than 1024")
	}
	return nil
}

func (p *TransactionPatch) Validate() error {
	if p.Amount != nil && (*p.Amount < 0 || math.IsNaN(*p.Amount) || math.IsInf(*p.Amount, 0)) {
		return errors.NewValidationError("Amount must be a positive number")
	}
	if p.Status != nil && *p.Status != StatusPending && *p.Status != StatusCompleted && *p.Status != StatusFailed {
		return errors.NewValidationError("Status must be 'pending', 'completed' or 'failed'")
	}
	if p.Description != nil && len(*p.Description) > 1024 {
		return errors.NewValidationError("Description must be of length less than 1024")
	}
	return nil
}

type TransactionRepository interface {
	FindAllByUser(userID string, limit, offset int) ([]Transaction, error)
	FindByID(transactionID, userID string) (*Transaction, error)
	ExistsByAccountID(accountID, userID string) (bool, error)
	ExistsByCategoryID(categoryID, userID string) (bool, error)
	// SumSignedAmountByAccount returns the net contribution of all stored
	// transactions referencing the account. Used by the reconciliation sweep.
	SumSignedAmountByAccount(accountID, userID string) (float64, error)

	SaveWithTx(transaction Transaction, tx Tx) error
	UpdateWithTx(transaction Transaction, tx Tx) error
	DeleteWithTx(transactionID, userID string, tx Tx) error
}

// Apply merges the patch into a copy of the transaction and returns it.
func (t Transaction) Apply(patch TransactionPatch) Transaction {
	if patch.BankID != nil {
		t.BankID = patch.BankID
	}
	if patch.CategoryID != nil {
		t.CategoryID = patch.CategoryID
	}
	if patch.BaseCategory != nil {
		t.BaseCategory = patch.BaseCategory
	}
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Date != nil {
		t.Date = *patch.Date
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	return t
}
