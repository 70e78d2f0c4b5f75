package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, bank_id, category_id, base_category, amount, type, status, date, description`

func (r *TransactionRepository) FindAllByUser(userID string, limit, offset int) ([]domain.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		var description sql.NullString
		if err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.BankID, &transaction.CategoryID,
			&transaction.BaseCategory, &transaction.Amount, &transaction.Direction, &transaction.Status,
			&transaction.Date, &description); err != nil {
			return nil, err
		}
		transaction.Description = description.String
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func (r *TransactionRepository) FindByID(transactionID, userID string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	var description sql.NullString
	err := r.db.QueryRow(
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID,
	).Scan(&transaction.ID, &transaction.UserID, &transaction.BankID, &transaction.CategoryID,
		&transaction.BaseCategory, &transaction.Amount, &transaction.Direction, &transaction.Status,
		&transaction.Date, &description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, financeErrors.NewNotFoundError("transaction")
	}
	if err != nil {
		return nil, err
	}
	transaction.Description = description.String
	return &transaction, nil
}

func (r *TransactionRepository) ExistsByAccountID(accountID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE bank_id = $1 AND user_id = $2)`,
		accountID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *TransactionRepository) ExistsByCategoryID(categoryID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE category_id = $1 AND user_id = $2)`,
		categoryID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *TransactionRepository) SumSignedAmountByAccount(accountID, userID string) (float64, error) {
	var sum float64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(CASE type WHEN 'credit' THEN amount WHEN 'debit' THEN -amount ELSE 0 END), 0)
         FROM transactions WHERE bank_id = $1 AND user_id = $2`,
		accountID, userID,
	).Scan(&sum)
	return sum, err
}

func (r *TransactionRepository) SaveWithTx(transaction domain.Transaction, tx domain.Tx) error {
	sqlTx := tx.(*sql.Tx)
	_, err := sqlTx.Exec(
		`INSERT INTO transactions (id, user_id, bank_id, category_id, base_category, amount, type, status, date, description)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		transaction.ID, transaction.UserID, transaction.BankID, transaction.CategoryID, transaction.BaseCategory,
		transaction.Amount, transaction.Direction, transaction.Status, transaction.Date, transaction.Description,
	)
	if err != nil && isUniqueViolation(err) {
		return financeErrors.NewConflictError("transaction already exists")
	}
	return err
}

func (r *TransactionRepository) UpdateWithTx(transaction domain.Transaction, tx domain.Tx) error {
	sqlTx := tx.(*sql.Tx)
	result, err := sqlTx.Exec(
		`UPDATE transactions SET bank_id = $1, category_id = $2, base_category = $3, amount = $4, status = $5, date = $6, description = $7
         WHERE id = $8 AND user_id = $9`,
		transaction.BankID, transaction.CategoryID, transaction.BaseCategory, transaction.Amount,
		transaction.Status, transaction.Date, transaction.Description, transaction.ID, transaction.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(result, "transaction")
}

func (r *TransactionRepository) DeleteWithTx(transactionID, userID string, tx domain.Tx) error {
	sqlTx := tx.(*sql.Tx)
	result, err := sqlTx.Exec(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return err
	}
	return requireRow(result, "transaction")
}
