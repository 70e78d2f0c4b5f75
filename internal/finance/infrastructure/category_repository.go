package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(category domain.TransactionCategory) error {
	_, err := r.db.Exec(
		`INSERT INTO transaction_categories (id, user_id, name, icon, base_category, type)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.UserID, category.Name, category.Icon, category.BaseCategory, category.Type,
	)
	if err != nil && isUniqueViolation(err) {
		return financeErrors.NewConflictError("category already exists")
	}
	return err
}

func (r *CategoryRepository) FindAllByUser(userID string) ([]domain.TransactionCategory, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, icon, base_category, type FROM transaction_categories WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.TransactionCategory
	for rows.Next() {
		var category domain.TransactionCategory
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Icon,
			&category.BaseCategory, &category.Type); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByID(categoryID, userID string) (*domain.TransactionCategory, error) {
	var category domain.TransactionCategory
	err := r.db.QueryRow(
		`SELECT id, user_id, name, icon, base_category, type FROM transaction_categories WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.Icon, &category.BaseCategory, &category.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, financeErrors.NewNotFoundError("category")
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Update(category domain.TransactionCategory) error {
	result, err := r.db.Exec(
		`UPDATE transaction_categories SET name = $1, icon = $2 WHERE id = $3 AND user_id = $4`,
		category.Name, category.Icon, category.ID, category.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(result, "category")
}

func (r *CategoryRepository) Delete(categoryID, userID string) error {
	result, err := r.db.Exec(`DELETE FROM transaction_categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return err
	}
	return requireRow(result, "category")
}

func (r *CategoryRepository) ExistsByID(categoryID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM transaction_categories WHERE id = $1 AND user_id = $2)`,
		categoryID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
