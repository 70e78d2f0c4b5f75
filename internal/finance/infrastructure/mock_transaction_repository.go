package infrastructure

import (
	"sort"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

// MockTransactionRepository is an in-memory stand-in used by unit tests.
type MockTransactionRepository struct {
	Transactions map[string]domain.Transaction
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{Transactions: make(map[string]domain.Transaction)}
}

func (m *MockTransactionRepository) FindAllByUser(userID string, limit, offset int) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			transactions = append(transactions, transaction)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	if offset >= len(transactions) {
		return nil, nil
	}
	transactions = transactions[offset:]
	if limit < len(transactions) {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

func (m *MockTransactionRepository) FindByID(transactionID, userID string) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[transactionID]
	if !ok || transaction.UserID != userID {
		return nil, financeErrors.NewNotFoundError("transaction")
	}
	return &transaction, nil
}

func (m *MockTransactionRepository) ExistsByAccountID(accountID, userID string) (bool, error) {
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.BankID != nil && *transaction.BankID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTransactionRepository) ExistsByCategoryID(categoryID, userID string) (bool, error) {
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.CategoryID != nil && *transaction.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTransactionRepository) SumSignedAmountByAccount(accountID, userID string) (float64, error) {
	var sum float64
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID && transaction.BankID != nil && *transaction.BankID == accountID {
			sum += transaction.BalanceSign() * transaction.Amount
		}
	}
	return sum, nil
}

func (m *MockTransactionRepository) SaveWithTx(transaction domain.Transaction, _ domain.Tx) error {
	if _, exists := m.Transactions[transaction.ID]; exists {
		return financeErrors.NewConflictError("transaction already exists")
	}
	m.Transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) UpdateWithTx(transaction domain.Transaction, _ domain.Tx) error {
	existing, ok := m.Transactions[transaction.ID]
	if !ok || existing.UserID != transaction.UserID {
		return financeErrors.NewNotFoundError("transaction")
	}
	m.Transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) DeleteWithTx(transactionID, userID string, _ domain.Tx) error {
	transaction, ok := m.Transactions[transactionID]
	if !ok || transaction.UserID != userID {
		return financeErrors.NewNotFoundError("transaction")
	}
	delete(m.Transactions, transactionID)
	return nil
}
