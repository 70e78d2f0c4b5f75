package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
	"github.com/hrslabs/kiffscore/internal/finance/infrastructure"
)

type ledgerFixture struct {
	service      *LedgerService
	accounts     *infrastructure.MockBankAccountRepository
	transactions *infrastructure.MockTransactionRepository
	categories   *infrastructure.MockCategoryRepository
}

func newLedgerFixture() *ledgerFixture {
	accounts := infrastructure.NewMockBankAccountRepository()
	transactions := infrastructure.NewMockTransactionRepository()
	categories := infrastructure.NewMockCategoryRepository()
	return &ledgerFixture{
		service:      NewLedgerService(transactions, accounts, categories),
		accounts:     accounts,
		transactions: transactions,
		categories:   categories,
	}
}

func (f *ledgerFixture) seedAccount(id, userID string, balance float64) {
	f.accounts.Accounts[id] = domain.BankAccount{
		ID: id, UserID: userID, Label: "Compte", Type: domain.AccountTypeCurrent,
		Balance: balance, OpeningBalance: balance,
	}
}

func (f *ledgerFixture) balance(t *testing.T, accountID, userID string) float64 {
	t.Helper()
	account, err := f.accounts.FindByID(accountID, userID)
	assert.NoError(t, err)
	return account.Balance
}

func newTransaction(userID, direction string, amount float64, bankID *string) domain.Transaction {
	return domain.Transaction{
		UserID:    userID,
		BankID:    bankID,
		Amount:    amount,
		Direction: direction,
		Status:    domain.StatusCompleted,
		Date:      time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
}

func strPtr(s string) *string { return &s }

func TestCreateTransaction_AppliesBalanceDelta(t *testing.T) {
	f := newLedgerFixture()
	f.seedAccount("bank-1", "user-1", 100)

	credit := newTransaction("user-1", domain.DirectionCredit, 50, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&credit))
	assert.Equal(t, 150.0, f.balance(t, "bank-1", "user-1"))

	debit := newTransaction("user-1", domain.DirectionDebit, 30, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&debit))
	assert.Equal(t, 120.0, f.balance(t, "bank-1", "user-1"))

	transfer := newTransaction("user-1", domain.DirectionTransfer, 40, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&transfer))
	assert.Equal(t, 120.0, f.balance(t, "bank-1", "user-1"), "transfers must not move the balance")

	assert.Len(t, f.transactions.Transactions, 3)
	assert.NotEmpty(t, credit.ID)
}

func TestCreateTransaction_PendingMovesBalance(t *testing.T) {
	f := newLedgerFixture()
	f.seedAccount("bank-1", "user-1", 100)

	pending := newTransaction("user-1", domain.DirectionDebit, 25, strPtr("bank-1"))
	pending.Status = domain.StatusPending
	assert.NoError(t, f.service.CreateTransaction(&pending))
	assert.Equal(t, 75.0, f.balance(t, "bank-1", "user-1"))

	failed := newTransaction("user-1", domain.DirectionCredit, 10, strPtr("bank-1"))
	failed.Status = domain.StatusFailed
	assert.NoError(t, f.service.CreateTransaction(&failed))
	assert.Equal(t, 85.0, f.balance(t, "bank-1", "user-1"))
}

func TestCreateTransaction_WithoutAccount(t *testing.T) {
	f := newLedgerFixture()

	transaction := newTransaction("user-1", domain.DirectionDebit, 25, nil)
	assert.NoError(t, f.service.CreateTransaction(&transaction))
	assert.Len(t, f.transactions.Transactions, 1)
}

func TestCreateTransaction_ForeignBankAccount(t *testing.T) {
	f := newLedgerFixture()
	f.seedAccount("bank-1", "someone-else", 100)

	transaction := newTransaction("user-1", domain.DirectionDebit, 25, strPtr("bank-1"))
	err := f.service.CreateTransaction(&transaction)

	var forbidden *financeErrors.ForbiddenReferenceError
	assert.ErrorAs(t, err, &forbidden)
	assert.Equal(t, financeErrors.ReferenceWallet, forbidden.Reference)
	assert.Equal(t, 100.0, f.balance(t, "bank-1", "someone-else"), "foreign balance must stay untouched")
	assert.Empty(t, f.transactions.Transactions)
}

func TestCreateTransaction_ForeignCategory(t *testing.T) {
	f := newLedgerFixture()
	f.categories.Categories["cat-1"] = domain.TransactionCategory{
		ID: "cat-1", UserID: "someone-else", Name: "Courses", Type: domain.CategoryTypeExpense,
	}

	transaction := newTransaction("user-1", domain.DirectionDebit, 25, nil)
	transaction.CategoryID = strPtr("cat-1")
	err := f.service.CreateTransaction(&transaction)

	var forbidden *financeErrors.ForbiddenReferenceError
	assert.ErrorAs(t, err, &forbidden)
	assert.Equal(t, financeErrors.ReferenceCategory, forbidden.Reference)
	assert.Empty(t, f.transactions.Transactions)
}

func TestUpdateTransaction_SameAccountAmountChange(t *testing.T) {
	f := newLedgerFixture()
	f.seedAccount("bank-1", "user-1", 1000)

	debit := newTransaction("user-1", domain.DirectionDebit, 100, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&debit))
	assert.Equal(t, 900.0, f.balance(t, "bank-1", "user-1"))

	amount := 40.0
	updated, err := f.service.UpdateTransaction(debit.ID, "user-1", domain.TransactionPatch{Amount: &amount})
	assert.NoError(t, err)
	assert.Equal(t, 40.0, updated.Amount)
	assert.Equal(t, 960.0, f.balance(t, "bank-1", "user-1"))
}

func TestUpdateTransaction_SameAmountIsNoOp(t *testing.T) {
	f := newLedgerFixture()
	f.seedAccount("bank-1", "user-1", 1000)

	debit := newTransaction("user-1", domain.DirectionDebit, 100, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&debit))

	amount := 100.0
	_, err := f.service.UpdateTransaction(debit.ID, "user-1", domain.TransactionPatch{Amount: &amount})
	assert.NoError(t, err)
	assert.Equal(t, 900.0, f.balance(t, "bank-1", "user-1"))
}

func TestUpdateTransaction_MovesAccount(t *testing.T) {
	f := newLedgerFixture()
	f.seedAccount("bank-1", "user-1", 500)
	f.seedAccount("bank-2", "user-1", 500)

	debit := newTransaction("user-1", domain.DirectionDebit, 50, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&debit))
	assert.Equal(t, 450.0, f.balance(t, "bank-1", "user-1"))

	updated, err := f.service.UpdateTransaction(debit.ID, "user-1", domain.TransactionPatch{BankID: strPtr("bank-2")})
	assert.NoError(t, err)
	assert.Equal(t, "bank-2", *updated.BankID)
	assert.Equal(t, 500.0, f.balance(t, "bank-1", "user-1"), "old account must get the contribution back")
	assert.Equal(t, 450.0, f.balance(t, "bank-2", "user-1"), "new account must absorb the contribution")
}

func TestUpdateTransaction_TransferStaysNeutral(t *testing.T) {
	f := newLedgerFixture()
	f.seedAccount("bank-1", "user-1", 500)

	transfer := newTransaction("user-1", domain.DirectionTransfer, 50, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&transfer))

	amount := 80.0
	_, err := f.service.UpdateTransaction(transfer.ID, "user-1", domain.TransactionPatch{Amount: &amount})
	assert.NoError(t, err)
	assert.Equal(t, 500.0, f.balance(t, "bank-1", "user-1"))
}

func TestUpdateTransaction_ForeignPatchReference(t *testing.T) {
	f := newLedgerFixture()
	f.seedAccount("bank-1", "user-1", 500)
	f.seedAccount("bank-2", "someone-else", 500)

	debit := newTransaction("user-1", domain.DirectionDebit, 50, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&debit))

	_, err := f.service.UpdateTransaction(debit.ID, "user-1", domain.TransactionPatch{BankID: strPtr("bank-2")})
	var forbidden *financeErrors.ForbiddenReferenceError
	assert.ErrorAs(t, err, &forbidden)
	assert.Equal(t, 450.0, f.balance(t, "bank-1", "user-1"), "rejected patch must leave balances as they were")
	assert.Equal(t, 500.0, f.balance(t, "bank-2", "someone-else"))
}

func TestDeleteTransaction_ReversesContribution(t *testing.T) {
	f := newLedgerFixture()
	f.seedAccount("bank-1", "user-1", 100)

	debit := newTransaction("user-1", domain.DirectionDebit, 40, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&debit))
	assert.Equal(t, 60.0, f.balance(t, "bank-1", "user-1"))

	assert.NoError(t, f.service.DeleteTransaction(debit.ID, "user-1"))
	assert.Equal(t, 100.0, f.balance(t, "bank-1", "user-1"))
	assert.Empty(t, f.transactions.Transactions)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	f := newLedgerFixture()
	err := f.service.DeleteTransaction("missing", "user-1")
	assert.True(t, financeErrors.IsNotFoundError(err))
}

// The running balance must always equal the opening balance plus the signed
// sum of the stored transactions, whatever sequence of writes produced it.
func TestLedger_BalanceInvariantOverMixedSequence(t *testing.T) {
	f := newLedgerFixture()
	f.seedAccount("bank-1", "user-1", 250)

	first := newTransaction("user-1", domain.DirectionCredit, 120, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&first))
	second := newTransaction("user-1", domain.DirectionDebit, 35.5, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&second))
	third := newTransaction("user-1", domain.DirectionTransfer, 80, strPtr("bank-1"))
	assert.NoError(t, f.service.CreateTransaction(&third))

	amount := 60.25
	_, err := f.service.UpdateTransaction(second.ID, "user-1", domain.TransactionPatch{Amount: &amount})
	assert.NoError(t, err)
	assert.NoError(t, f.service.DeleteTransaction(first.ID, "user-1"))

	applied, err := f.transactions.SumSignedAmountByAccount("bank-1", "user-1")
	assert.NoError(t, err)
	account, err := f.accounts.FindByID("bank-1", "user-1")
	assert.NoError(t, err)
	assert.InDelta(t, account.OpeningBalance+applied, account.Balance, 0.0001)
}

func TestGetUserTransactions_DefaultsAndEmpty(t *testing.T) {
	f := newLedgerFixture()

	transactions, err := f.service.GetUserTransactions("user-1", 0, -5)
	assert.NoError(t, err)
	assert.NotNil(t, transactions)
	assert.Empty(t, transactions)
}
