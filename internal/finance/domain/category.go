package domain

import "github.com/hrslabs/kiffscore/internal/finance/errors"

const (
	CategoryTypeExpense = 1
	CategoryTypeIncome  = 2
)

type TransactionCategory struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	BaseCategory string `json:"base_category"`
	Type         int    `json:"type"`
}

func (c *TransactionCategory) Validate() error {
	if c.Name == "" || len(c.Name) > 45 {
		return errors.NewValidationError("Name must be a non-empty string of at most 45 characters")
	}
	if len(c.BaseCategory) > 45 {
		return errors.NewValidationError("Base category must be of length less than 45")
	}
	if c.Type != CategoryTypeExpense && c.Type != CategoryTypeIncome {
		return errors.NewValidationError("Type must be 1 (expense) or 2 (income)")
	}
	return nil
}

type CategoryRepository interface {
	Save(category TransactionCategory) error
	FindAllByUser(userID string) ([]TransactionCategory, error)
	FindByID(categoryID, userID string) (*TransactionCategory, error)
	Update(category TransactionCategory) error
	Delete(categoryID, userID string) error
	ExistsByID(categoryID, userID string) (bool, error)
}
