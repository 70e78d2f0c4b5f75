package infrastructure

import (
	"sort"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

// MockBankAccountRepository is an in-memory stand-in used by unit tests.
type MockBankAccountRepository struct {
	Accounts map[string]domain.BankAccount
}

// NoopTx satisfies domain.Tx for repositories without real transactions.
type NoopTx struct{}

func (NoopTx) Commit() error   { return nil }
func (NoopTx) Rollback() error { return nil }

func NewMockBankAccountRepository() *MockBankAccountRepository {
	return &MockBankAccountRepository{Accounts: make(map[string]domain.BankAccount)}
}

func (m *MockBankAccountRepository) Save(account domain.BankAccount) error {
	if _, exists := m.Accounts[account.ID]; exists {
		return financeErrors.NewConflictError("bank account already exists")
	}
	m.Accounts[account.ID] = account
	return nil
}

func (m *MockBankAccountRepository) FindAllByUser(userID string) ([]domain.BankAccount, error) {
	var accounts []domain.BankAccount
	for _, account := range m.Accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *MockBankAccountRepository) FindAll() ([]domain.BankAccount, error) {
	var accounts []domain.BankAccount
	for _, account := range m.Accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *MockBankAccountRepository) FindByID(accountID, userID string) (*domain.BankAccount, error) {
	account, ok := m.Accounts[accountID]
	if !ok || account.UserID != userID {
		return nil, financeErrors.NewNotFoundError("bank account")
	}
	return &account, nil
}

func (m *MockBankAccountRepository) Update(account domain.BankAccount) error {
	existing, ok := m.Accounts[account.ID]
	if !ok || existing.UserID != account.UserID {
		return financeErrors.NewNotFoundError("bank account")
	}
	m.Accounts[account.ID] = account
	return nil
}

func (m *MockBankAccountRepository) Delete(accountID, userID string) error {
	account, ok := m.Accounts[accountID]
	if !ok || account.UserID != userID {
		return financeErrors.NewNotFoundError("bank account")
	}
	delete(m.Accounts, accountID)
	return nil
}

func (m *MockBankAccountRepository) ExistsByID(accountID, userID string) (bool, error) {
	account, ok := m.Accounts[accountID]
	return ok && account.UserID == userID, nil
}

func (m *MockBankAccountRepository) BeginTransaction() (domain.Tx, error) {
	return NoopTx{}, nil
}

func (m *MockBankAccountRepository) FindByIDWithTx(accountID, userID string, _ domain.Tx) (*domain.BankAccount, error) {
	return m.FindByID(accountID, userID)
}

func (m *MockBankAccountRepository) UpdateBalanceWithTx(accountID, userID string, balance float64, _ domain.Tx) error {
	account, ok := m.Accounts[accountID]
	if !ok || account.UserID != userID {
		return financeErrors.NewNotFoundError("bank account")
	}
	account.Balance = balance
	m.Accounts[accountID] = account
	return nil
}
