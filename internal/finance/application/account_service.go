package application

import (
	"github.com/google/uuid"
	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

type BankAccountService struct {
	accounts     domain.BankAccountRepository
	transactions domain.TransactionRepository
}

func NewBankAccountService(accounts domain.BankAccountRepository, transactions domain.TransactionRepository) *BankAccountService {
	return &BankAccountService{accounts: accounts, transactions: transactions}
}

func (s *BankAccountService) CreateBankAccount(account *domain.BankAccount) error {
	account.ID = uuid.NewString()
	account.OpeningBalance = account.Balance
	if err := account.Validate(); err != nil {
		return err
	}
	return s.accounts.Save(*account)
}

func (s *BankAccountService) GetBankAccounts(userID string) ([]domain.BankAccount, error) {
	accounts, err := s.accounts.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		return []domain.BankAccount{}, nil
	}
	return accounts, nil
}

// UpdateBankAccount edits the label, icon or balance. A direct balance edit
// moves the opening balance by the same delta so the ledger invariant
// (balance = opening + signed sum of transactions) keeps holding.
func (s *BankAccountService) UpdateBankAccount(accountID, userID string, label, icon *string, balance *float64) (*domain.BankAccount, error) {
	account, err := s.accounts.FindByID(accountID, userID)
	if err != nil {
		return nil, err
	}
	if label != nil {
		account.Label = *label
	}
	if icon != nil {
		account.Icon = *icon
	}
	if balance != nil {
		account.OpeningBalance += *balance - account.Balance
		account.Balance = *balance
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.accounts.Update(*account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteBankAccount refuses to drop an account while transactions still
// reference it.
func (s *BankAccountService) DeleteBankAccount(accountID, userID string) error {
	inUse, err := s.transactions.ExistsByAccountID(accountID, userID)
	if err != nil {
		return err
	}
	if inUse {
		return financeErrors.NewResourceInUseError("bank account")
	}
	return s.accounts.Delete(accountID, userID)
}
