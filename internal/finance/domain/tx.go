package domain

// Tx is the unit-of-work handle shared by the account and transaction
// repositories. A transaction mutation and its balance writes are committed
// or rolled back together through it. The Postgres implementation hands out
// *sql.Tx; mocks hand out a no-op.
type Tx interface {
	Commit() error
	Rollback() error
}
