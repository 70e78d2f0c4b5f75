package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

type BankAccountRepository struct {
	db *sql.DB
}

func NewBankAccountRepository(db *sql.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

func (r *BankAccountRepository) Save(account domain.BankAccount) error {
	_, err := r.db.Exec(
		`INSERT INTO bank_accounts (id, user_id, label, type, balance, opening_balance, icon)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		account.ID, account.UserID, account.Label, account.Type, account.Balance, account.OpeningBalance, account.Icon,
	)
	if err != nil && isUniqueViolation(err) {
		return financeErrors.NewConflictError("bank account already exists")
	}
	return err
}

func (r *BankAccountRepository) FindAllByUser(userID string) ([]domain.BankAccount, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, label, type, balance, opening_balance, icon FROM bank_accounts WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBankAccounts(rows)
}

func (r *BankAccountRepository) FindAll() ([]domain.BankAccount, error) {
	rows, err := r.db.Query(`SELECT id, user_id, label, type, balance, opening_balance, icon FROM bank_accounts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBankAccounts(rows)
}

func scanBankAccounts(rows *sql.Rows) ([]domain.BankAccount, error) {
	var accounts []domain.BankAccount
	for rows.Next() {
		var account domain.BankAccount
		if err := rows.Scan(&account.ID, &account.UserID, &account.Label, &account.Type,
			&account.Balance, &account.OpeningBalance, &account.Icon); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *BankAccountRepository) FindByID(accountID, userID string) (*domain.BankAccount, error) {
	row := r.db.QueryRow(
		`SELECT id, user_id, label, type, balance, opening_balance, icon FROM bank_accounts WHERE id = $1 AND user_id = $2`,
		accountID, userID,
	)
	return scanBankAccount(row)
}

func scanBankAccount(row *sql.Row) (*domain.BankAccount, error) {
	var account domain.BankAccount
	err := row.Scan(&account.ID, &account.UserID, &account.Label, &account.Type,
		&account.Balance, &account.OpeningBalance, &account.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, financeErrors.NewNotFoundError("bank account")
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *BankAccountRepository) Update(account domain.BankAccount) error {
	result, err := r.db.Exec(
		`UPDATE bank_accounts SET label = $1, balance = $2, opening_balance = $3, icon = $4 WHERE id = $5 AND user_id = $6`,
		account.Label, account.Balance, account.OpeningBalance, account.Icon, account.ID, account.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(result, "bank account")
}

func (r *BankAccountRepository) Delete(accountID, userID string) error {
	result, err := r.db.Exec(`DELETE FROM bank_accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	if err != nil {
		return err
	}
	return requireRow(result, "bank account")
}

func (r *BankAccountRepository) ExistsByID(accountID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM bank_accounts WHERE id = $1 AND user_id = $2)`,
		accountID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *BankAccountRepository) BeginTransaction() (domain.Tx, error) {
	return r.db.Begin()
}

func (r *BankAccountRepository) FindByIDWithTx(accountID, userID string, tx domain.Tx) (*domain.BankAccount, error) {
	sqlTx := tx.(*sql.Tx)
	row := sqlTx.QueryRow(
		`SELECT id, user_id, label, type, balance, opening_balance, icon FROM bank_accounts WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		accountID, userID,
	)
	return scanBankAccount(row)
}

func (r *BankAccountRepository) UpdateBalanceWithTx(accountID, userID string, balance float64, tx domain.Tx) error {
	sqlTx := tx.(*sql.Tx)
	result, err := sqlTx.Exec(
		`UPDATE bank_accounts SET balance = $1 WHERE id = $2 AND user_id = $3`,
		balance, accountID, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(result, "bank account")
}

func requireRow(result sql.Result, resource string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.NewNotFoundError(resource)
	}
	return nil
}

// isUniqueViolation matches the Postgres unique_violation error code.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
