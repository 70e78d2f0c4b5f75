package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
	"github.com/hrslabs/kiffscore/internal/finance/infrastructure"
)

func TestCreateBankAccount_SetsOpeningBalance(t *testing.T) {
	accounts := infrastructure.NewMockBankAccountRepository()
	service := NewBankAccountService(accounts, infrastructure.NewMockTransactionRepository())

	account := domain.BankAccount{UserID: "user-1", Label: "Courant", Type: domain.AccountTypeCurrent, Balance: 320}
	assert.NoError(t, service.CreateBankAccount(&account))
	assert.NotEmpty(t, account.ID)

	stored := accounts.Accounts[account.ID]
	assert.Equal(t, 320.0, stored.Balance)
	assert.Equal(t, 320.0, stored.OpeningBalance)
}

func TestUpdateBankAccount_BalanceEditMovesOpeningBalance(t *testing.T) {
	accounts := infrastructure.NewMockBankAccountRepository()
	transactions := infrastructure.NewMockTransactionRepository()
	service := NewBankAccountService(accounts, transactions)

	accounts.Accounts["bank-1"] = domain.BankAccount{
		ID: "bank-1", UserID: "user-1", Label: "Courant", Type: domain.AccountTypeCurrent,
		Balance: 150, OpeningBalance: 100,
	}

	balance := 90.0
	updated, err := service.UpdateBankAccount("bank-1", "user-1", nil, nil, &balance)
	assert.NoError(t, err)
	assert.Equal(t, 90.0, updated.Balance)
	// The 50 of applied transactions stays accounted for: 90 = 40 + 50.
	assert.Equal(t, 40.0, updated.OpeningBalance)
}

func TestDeleteBankAccount_RefusedWhileReferenced(t *testing.T) {
	accounts := infrastructure.NewMockBankAccountRepository()
	transactions := infrastructure.NewMockTransactionRepository()
	service := NewBankAccountService(accounts, transactions)

	accounts.Accounts["bank-1"] = domain.BankAccount{ID: "bank-1", UserID: "user-1", Label: "Courant", Type: domain.AccountTypeCurrent}
	bankID := "bank-1"
	transactions.Transactions["t-1"] = domain.Transaction{
		ID: "t-1", UserID: "user-1", BankID: &bankID, Amount: 10,
		Direction: domain.DirectionDebit, Status: domain.StatusCompleted, Date: time.Now(),
	}

	err := service.DeleteBankAccount("bank-1", "user-1")
	assert.True(t, financeErrors.IsResourceInUseError(err))
	assert.Contains(t, accounts.Accounts, "bank-1")

	delete(transactions.Transactions, "t-1")
	assert.NoError(t, service.DeleteBankAccount("bank-1", "user-1"))
	assert.NotContains(t, accounts.Accounts, "bank-1")
}

func TestDeleteCategory_RefusedWhileReferenced(t *testing.T) {
	categories := infrastructure.NewMockCategoryRepository()
	transactions := infrastructure.NewMockTransactionRepository()
	service := NewCategoryService(categories, transactions)

	categories.Categories["cat-1"] = domain.TransactionCategory{ID: "cat-1", UserID: "user-1", Name: "Courses", Type: domain.CategoryTypeExpense}
	categoryID := "cat-1"
	transactions.Transactions["t-1"] = domain.Transaction{
		ID: "t-1", UserID: "user-1", CategoryID: &categoryID, Amount: 10,
		Direction: domain.DirectionDebit, Status: domain.StatusCompleted, Date: time.Now(),
	}

	err := service.DeleteCategory("cat-1", "user-1")
	assert.True(t, financeErrors.IsResourceInUseError(err))
	assert.Contains(t, categories.Categories, "cat-1")

	delete(transactions.Transactions, "t-1")
	assert.NoError(t, service.DeleteCategory("cat-1", "user-1"))
	assert.NotContains(t, categories.Categories, "cat-1")
}

func TestCreateCategory_Validates(t *testing.T) {
	categories := infrastructure.NewMockCategoryRepository()
	service := NewCategoryService(categories, infrastructure.NewMockTransactionRepository())

	category := domain.TransactionCategory{UserID: "user-1", Name: "", Type: domain.CategoryTypeExpense}
	err := service.CreateCategory(&category)
	assert.True(t, financeErrors.IsValidationError(err))
	assert.Empty(t, categories.Categories)
}
