package interfaces

import (
	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

// MockBankAccountService backs the settings handler tests. Err, when set,
// is returned by every call.
type MockBankAccountService struct {
	Accounts []domain.BankAccount
	Deleted  []string
	Err      error
}

func (m *MockBankAccountService) CreateBankAccount(account *domain.BankAccount) error {
	if m.Err != nil {
		return m.Err
	}
	if err := account.Validate(); err != nil {
		return err
	}
	if account.ID == "" {
		account.ID = "mock-bank-id"
	}
	m.Accounts = append(m.Accounts, *account)
	return nil
}

func (m *MockBankAccountService) GetBankAccounts(userID string) ([]domain.BankAccount, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []domain.BankAccount
	for _, a := range m.Accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockBankAccountService) UpdateBankAccount(accountID, userID string, label, icon *string, balance *float64) (*domain.BankAccount, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Accounts {
		if m.Accounts[i].ID == accountID && m.Accounts[i].UserID == userID {
			if label != nil {
				m.Accounts[i].Label = *label
			}
			if icon != nil {
				m.Accounts[i].Icon = *icon
			}
			if balance != nil {
				m.Accounts[i].Balance = *balance
			}
			return &m.Accounts[i], nil
		}
	}
	return nil, financeErrors.NewNotFoundError("bank account")
}

func (m *MockBankAccountService) DeleteBankAccount(accountID, userID string) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Accounts {
		if m.Accounts[i].ID == accountID && m.Accounts[i].UserID == userID {
			m.Accounts = append(m.Accounts[:i], m.Accounts[i+1:]...)
			m.Deleted = append(m.Deleted, accountID)
			return nil
		}
	}
	return financeErrors.NewNotFoundError("bank account")
}

// MockCategoryService backs the settings handler tests.
type MockCategoryService struct {
	Categories []domain.TransactionCategory
	Deleted    []string
	Err        error
}

func (m *MockCategoryService) CreateCategory(category *domain.TransactionCategory) error {
	if m.Err != nil {
		return m.Err
	}
	if err := category.Validate(); err != nil {
		return err
	}
	if category.ID == "" {
		category.ID = "mock-category-id"
	}
	m.Categories = append(m.Categories, *category)
	return nil
}

func (m *MockCategoryService) GetCategories(userID string) ([]domain.TransactionCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []domain.TransactionCategory
	for _, c := range m.Categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCategoryService) UpdateCategory(categoryID, userID string, name, icon *string) (*domain.TransactionCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID && m.Categories[i].UserID == userID {
			if name != nil {
				m.Categories[i].Name = *name
			}
			if icon != nil {
				m.Categories[i].Icon = *icon
			}
			return &m.Categories[i], nil
		}
	}
	return nil, financeErrors.NewNotFoundError("category")
}

func (m *MockCategoryService) DeleteCategory(categoryID, userID string) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID && m.Categories[i].UserID == userID {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			m.Deleted = append(m.Deleted, categoryID)
			return nil
		}
	}
	return financeErrors.NewNotFoundError("category")
}
