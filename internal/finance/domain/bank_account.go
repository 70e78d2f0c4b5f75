package domain

import (
	"github.com/hrslabs/kiffscore/internal/finance/errors"
)

// Bank account types. The grouping mirrors the product catalog: current-like
// accounts, savings products, card accounts, investment, crypto, credit and
// a catch-all bucket.
const (
	AccountTypeCurrent         = "current"
	AccountTypeYouth           = "compte_jeune"
	AccountTypeJoint           = "compte_joint"
	AccountTypeSavings         = "savings"
	AccountTypeLivretA         = "livret_a"
	AccountTypeLivretJeune     = "livret_jeune"
	AccountTypeLivretLDD       = "livret_developpement_durable"
	AccountTypeCEP             = "compte_epargne_populaire"
	AccountTypePEL             = "plan_epargne_logement"
	AccountTypeCEL             = "compte_epargne_logement"
	AccountTypeCreditCard      = "credit_card"
	AccountTypeDebitCard       = "debit_card"
	AccountTypePrepaidCard     = "prepaid_card"
	AccountTypeVirtualCard     = "virtual_card"
	AccountTypeInvestment      = "investment"
	AccountTypePEA             = "plan_epargne_action"
	AccountTypeRetirement      = "plan_retraite"
	AccountTypeCryptoWallet    = "crypto_wallet"
	AccountTypeBitcoinWallet   = "bitcoin_wallet"
	AccountTypeEthereumWallet  = "ethereum_wallet"
	AccountTypeLoan            = "loan"
	AccountTypeStudentLoan     = "student_loan"
	AccountTypeAutoLoan        = "auto_loan"
	AccountTypePersonalLoan    = "personal_loan"
	AccountTypeRevolvingCredit = "revolving_credit"
	AccountTypeOverdraft       = "overdraft_account"
	AccountTypeChild           = "child_account"
	AccountTypeCash            = "cash"
	AccountTypeOther           = "other"
)

// AllowedAccountTypes lists every account type a user may create.
var AllowedAccountTypes = []string{
	AccountTypeCurrent, AccountTypeYouth, AccountTypeJoint,
	AccountTypeSavings, AccountTypeLivretA, AccountTypeLivretJeune,
	AccountTypeLivretLDD, AccountTypeCEP, AccountTypePEL, AccountTypeCEL,
	AccountTypeCreditCard, AccountTypeDebitCard, AccountTypePrepaidCard,
	AccountTypeVirtualCard, AccountTypeInvestment, AccountTypePEA, AccountTypeRetirement,
	AccountTypeCryptoWallet, AccountTypeBitcoinWallet, AccountTypeEthereumWallet,
	AccountTypeLoan, AccountTypeStudentLoan, AccountTypeAutoLoan,
	AccountTypePersonalLoan, AccountTypeRevolvingCredit, AccountTypeOverdraft,
	AccountTypeChild, AccountTypeCash, AccountTypeOther,
}

// liquidAccountTypes is the allow-list of immediately spendable account
// types. Savings, investment, crypto and credit products are excluded on
// purpose: their balance is not available for day-to-day spending.
var liquidAccountTypes = map[string]struct{}{
	AccountTypeCurrent:     {},
	AccountTypeYouth:       {},
	AccountTypeJoint:       {},
	AccountTypePrepaidCard: {},
	AccountTypeDebitCard:   {},
	AccountTypeVirtualCard: {},
	AccountTypeCash:        {},
	AccountTypeOther:       {},
}

type BankAccount struct {
	ID      string  `json:"id"`
	UserID  string  `json:"user_id"`
	Label   string  `json:"label"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
	// OpeningBalance is the balance the account was created with, adjusted
	// whenever the balance is edited directly. The reconciliation sweep
	// expects Balance == OpeningBalance + signed sum of applied transactions.
	OpeningBalance float64 `json:"-"`
	Icon           string  `json:"icon"`
}

// IsLiquid reports whether the account counts towards the liquid reserve.
func (a *BankAccount) IsLiquid() bool {
	_, ok := liquidAccountTypes[a.Type]
	return ok
}

func (a *BankAccount) Validate() error {
	if a.Label == "" || len(a.Label) > 16 {
		return errors.NewValidationError("Label must be a non-empty string of at most 16 characters")
	}
	if !isAllowedAccountType(a.Type) {
		return errors.NewValidationError("Unknown bank account type")
	}
	return nil
}

func isAllowedAccountType(accountType string) bool {
	for _, t := range AllowedAccountTypes {
		if t == accountType {
			return true
		}
	}
	return false
}

type BankAccountRepository interface {
	Save(account BankAccount) error
	FindAllByUser(userID string) ([]BankAccount, error)
	FindByID(accountID, userID string) (*BankAccount, error)
	Update(account BankAccount) error
	Delete(accountID, userID string) error
	ExistsByID(accountID, userID string) (bool, error)
	// FindAll returns every account regardless of owner. Used by the
	// reconciliation sweep only.
	FindAll() ([]BankAccount, error)

	BeginTransaction() (Tx, error)
	FindByIDWithTx(accountID, userID string, tx Tx) (*BankAccount, error)
	UpdateBalanceWithTx(accountID, userID string, balance float64, tx Tx) error
}
