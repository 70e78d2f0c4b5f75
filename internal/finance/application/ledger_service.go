package application

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

// LedgerService owns transaction CRUD and the balance propagation that goes
// with it. Every mutation that touches a bank account balance runs inside a
// single repository transaction, so a failed write never leaves a half
// applied delta behind.
type LedgerService struct {
	transactions domain.TransactionRepository
	accounts     domain.BankAccountRepository
	categories   domain.CategoryRepository
}

func NewLedgerService(
	transactions domain.TransactionRepository,
	accounts domain.BankAccountRepository,
	categories domain.CategoryRepository,
) *LedgerService {
	return &LedgerService{
		transactions: transactions,
		accounts:     accounts,
		categories:   categories,
	}
}

// validateReferences checks that the referenced category and bank account,
// when present, belong to the caller. Both lookups are independent reads and
// run concurrently.
func (s *LedgerService) validateReferences(userID string, bankID, categoryID *string) error {
	type ownership struct {
		reference string
		ok        bool
		err       error
	}

	results := make(chan ownership, 2)
	checks := 0

	if categoryID != nil {
		checks++
		go func(id string) {
			ok, err := s.categories.ExistsByID(id, userID)
			results <- ownership{reference: financeErrors.ReferenceCategory, ok: ok, err: err}
		}(*categoryID)
	}
	if bankID != nil {
		checks++
		go func(id string) {
			ok, err := s.accounts.ExistsByID(id, userID)
			results <- ownership{reference: financeErrors.ReferenceWallet, ok: ok, err: err}
		}(*bankID)
	}

	var failure error
	for i := 0; i < checks; i++ {
		res := <-results
		if failure != nil {
			continue
		}
		if res.err != nil {
			failure = res.err
		} else if !res.ok {
			failure = financeErrors.NewForbiddenReferenceError(res.reference)
		}
	}
	return failure
}

// CreateTransaction validates ownership of the referenced resources, applies
// the balance delta to the referenced bank account and stores the
// transaction. Pending and failed transactions move the balance exactly like
// completed ones; only the credit/debit direction decides the sign, and a
// transfer applies no delta at all.
func (s *LedgerService) CreateTransaction(transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	if transaction.Date.IsZero() {
		transaction.Date = time.Now().UTC()
	}
	if err := transaction.Validate(); err != nil {
		return err
	}
	if err := s.validateReferences(transaction.UserID, transaction.BankID, transaction.CategoryID); err != nil {
		return err
	}

	tx, err := s.accounts.BeginTransaction()
	if err != nil {
		return err
	}
	defer rollbackOnPanic(tx)

	if transaction.BankID != nil {
		delta := transaction.BalanceSign() * transaction.Amount
		if delta != 0 {
			account, err := s.accounts.FindByIDWithTx(*transaction.BankID, transaction.UserID, tx)
			if err != nil {
				safeRollback(tx)
				return err
			}
			if err := s.accounts.UpdateBalanceWithTx(account.ID, transaction.UserID, account.Balance+delta, tx); err != nil {
				safeRollback(tx)
				return err
			}
		}
	}
	if err := s.transactions.SaveWithTx(*transaction, tx); err != nil {
		safeRollback(tx)
		return err
	}
	return tx.Commit()
}

// UpdateTransaction reworks the stored transaction and corrects balances.
// Three cases: same account (adjust by the contribution delta), account
// moved (reverse the full old contribution, apply the full new one), no
// account involved (no balance side effect).
func (s *LedgerService) UpdateTransaction(transactionID, userID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateReferences(userID, patch.BankID, patch.CategoryID); err != nil {
		return nil, err
	}

	base, err := s.transactions.FindByID(transactionID, userID)
	if err != nil {
		return nil, err
	}
	updated := base.Apply(patch)

	tx, err := s.accounts.BeginTransaction()
	if err != nil {
		return nil, err
	}
	defer rollbackOnPanic(tx)

	sign := base.BalanceSign()
	switch {
	case sign == 0:
		// Transfers never carried a contribution.
	case base.BankID == nil && updated.BankID == nil:
		// Nothing to correct.
	case base.BankID != nil && updated.BankID != nil && *base.BankID == *updated.BankID:
		if diff := sign * (updated.Amount - base.Amount); diff != 0 {
			account, err := s.accounts.FindByIDWithTx(*base.BankID, userID, tx)
			if err != nil {
				safeRollback(tx)
				return nil, err
			}
			if err := s.accounts.UpdateBalanceWithTx(account.ID, userID, account.Balance+diff, tx); err != nil {
				safeRollback(tx)
				return nil, err
			}
		}
	default:
		if base.BankID != nil {
			oldAccount, err := s.accounts.FindByIDWithTx(*base.BankID, userID, tx)
			if err != nil {
				safeRollback(tx)
				return nil, err
			}
			if err := s.accounts.UpdateBalanceWithTx(oldAccount.ID, userID, oldAccount.Balance-sign*base.Amount, tx); err != nil {
				safeRollback(tx)
				return nil, err
			}
		}
		if updated.BankID != nil {
			newAccount, err := s.accounts.FindByIDWithTx(*updated.BankID, userID, tx)
			if err != nil {
				safeRollback(tx)
				return nil, err
			}
			if err := s.accounts.UpdateBalanceWithTx(newAccount.ID, userID, newAccount.Balance+sign*updated.Amount, tx); err != nil {
				safeRollback(tx)
				return nil, err
			}
		}
	}

	if err := s.transactions.UpdateWithTx(updated, tx); err != nil {
		safeRollback(tx)
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTransaction reverses the transaction's contribution on its bank
// account and removes the record.
func (s *LedgerService) DeleteTransaction(transactionID, userID string) error {
	base, err := s.transactions.FindByID(transactionID, userID)
	if err != nil {
		return err
	}

	tx, err := s.accounts.BeginTransaction()
	if err != nil {
		return err
	}
	defer rollbackOnPanic(tx)

	if base.BankID != nil {
		if delta := base.BalanceSign() * base.Amount; delta != 0 {
			account, err := s.accounts.FindByIDWithTx(*base.BankID, userID, tx)
			if err != nil {
				safeRollback(tx)
				return err
			}
			if err := s.accounts.UpdateBalanceWithTx(account.ID, userID, account.Balance-delta, tx); err != nil {
				safeRollback(tx)
				return err
			}
		}
	}
	if err := s.transactions.DeleteWithTx(transactionID, userID, tx); err != nil {
		safeRollback(tx)
		return err
	}
	return tx.Commit()
}

func (s *LedgerService) GetTransaction(transactionID, userID string) (*domain.Transaction, error) {
	return s.transactions.FindByID(transactionID, userID)
}

func (s *LedgerService) GetUserTransactions(userID string, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	transactions, err := s.transactions.FindAllByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

func safeRollback(tx domain.Tx) {
	if err := tx.Rollback(); err != nil {
		log.Printf("Error during transaction rollback: %v", err)
	}
}

func rollbackOnPanic(tx domain.Tx) {
	if p := recover(); p != nil {
		safeRollback(tx)
		panic(p)
	}
}
