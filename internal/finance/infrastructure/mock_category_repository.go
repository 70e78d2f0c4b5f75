package infrastructure

import (
	"sort"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

// MockCategoryRepository is an in-memory stand-in used by unit tests.
type MockCategoryRepository struct {
	Categories map[string]domain.TransactionCategory
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[string]domain.TransactionCategory)}
}

func (m *MockCategoryRepository) Save(category domain.TransactionCategory) error {
	if _, exists := m.Categories[category.ID]; exists {
		return financeErrors.NewConflictError("category already exists")
	}
	m.Categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) FindAllByUser(userID string) ([]domain.TransactionCategory, error) {
	var categories []domain.TransactionCategory
	for _, category := range m.Categories {
		if category.UserID == userID {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (m *MockCategoryRepository) FindByID(categoryID, userID string) (*domain.TransactionCategory, error) {
	category, ok := m.Categories[categoryID]
	if !ok || category.UserID != userID {
		return nil, financeErrors.NewNotFoundError("category")
	}
	return &category, nil
}

func (m *MockCategoryRepository) Update(category domain.TransactionCategory) error {
	existing, ok := m.Categories[category.ID]
	if !ok || existing.UserID != category.UserID {
		return financeErrors.NewNotFoundError("category")
	}
	m.Categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) Delete(categoryID, userID string) error {
	category, ok := m.Categories[categoryID]
	if !ok || category.UserID != userID {
		return financeErrors.NewNotFoundError("category")
	}
	delete(m.Categories, categoryID)
	return nil
}

func (m *MockCategoryRepository) ExistsByID(categoryID, userID string) (bool, error) {
	category, ok := m.Categories[categoryID]
	return ok && category.UserID == userID, nil
}
