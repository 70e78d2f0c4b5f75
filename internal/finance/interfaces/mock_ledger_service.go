package interfaces

import (
	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

// MockLedgerService is an in-memory stand-in for the ledger used by the
// handler tests. Err, when set, is returned by every call.
type MockLedgerService struct {
	Transactions []domain.Transaction
	Deleted      []string
	Err          error
}

func (m *MockLedgerService) CreateTransaction(transaction *domain.Transaction) error {
	if m.Err != nil {
		return m.Err
	}
	if err := transaction.Validate(); err != nil {
		return err
	}
	if transaction.ID == "" {
		transaction.ID = "mock-transaction-id"
	}
	m.Transactions = append(m.Transactions, *transaction)
	return nil
}

func (m *MockLedgerService) GetUserTransactions(userID string, limit, offset int) ([]domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []domain.Transaction
	for _, t := range m.Transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	if offset >= len(out) {
		return []domain.Transaction{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockLedgerService) GetTransaction(transactionID, userID string) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID && m.Transactions[i].UserID == userID {
			return &m.Transactions[i], nil
		}
	}
	return nil, financeErrors.NewNotFoundError("transaction")
}

func (m *MockLedgerService) UpdateTransaction(transactionID, userID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID && m.Transactions[i].UserID == userID {
			m.Transactions[i] = m.Transactions[i].Apply(patch)
			return &m.Transactions[i], nil
		}
	}
	return nil, financeErrors.NewNotFoundError("transaction")
}

func (m *MockLedgerService) DeleteTransaction(transactionID, userID string) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID && m.Transactions[i].UserID == userID {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			m.Deleted = append(m.Deleted, transactionID)
			return nil
		}
	}
	return financeErrors.NewNotFoundError("transaction")
}
