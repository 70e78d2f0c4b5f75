package application

import (
	"github.com/google/uuid"
	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

type CategoryService struct {
	categories   domain.CategoryRepository
	transactions domain.TransactionRepository
}

func NewCategoryService(categories domain.CategoryRepository, transactions domain.TransactionRepository) *CategoryService {
	return &CategoryService{categories: categories, transactions: transactions}
}

func (s *CategoryService) CreateCategory(category *domain.TransactionCategory) error {
	category.ID = uuid.NewString()
	if err := category.Validate(); err != nil {
		return err
	}
	return s.categories.Save(*category)
}

func (s *CategoryService) GetCategories(userID string) ([]domain.TransactionCategory, error) {
	categories, err := s.categories.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		return []domain.TransactionCategory{}, nil
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(categoryID, userID string, name, icon *string) (*domain.TransactionCategory, error) {
	category, err := s.categories.FindByID(categoryID, userID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		category.Name = *name
	}
	if icon != nil {
		category.Icon = *icon
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := s.categories.Update(*category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses to drop a category while transactions still
// reference it.
func (s *CategoryService) DeleteCategory(categoryID, userID string) error {
	inUse, err := s.transactions.ExistsByCategoryID(categoryID, userID)
	if err != nil {
		return err
	}
	if inUse {
		return financeErrors.NewResourceInUseError("category")
	}
	return s.categories.Delete(categoryID, userID)
}
