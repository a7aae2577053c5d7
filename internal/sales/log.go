package sales

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"medstore/m/domain"
)

// firstTransactionID seeds the id sequence so transaction ids start above
// the medicine id range.
const firstTransactionID = 5001

// Log is the structured transaction ledger, an append-only SQLite database.
// Rows are inserted once per checkout and never updated or deleted.
type Log struct {
	db *sqlx.DB
}

// Open connects to the ledger database and creates its schema if needed.
// Use ":memory:" for an ephemeral ledger.
func Open(dsn string) (*Log, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open transaction log: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Log{db: db}, nil
}

func migrate(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            customer_name TEXT NOT NULL DEFAULT '',
            subtotal REAL NOT NULL,
            tax REAL NOT NULL,
            total REAL NOT NULL,
            created_at TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS transaction_items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            transaction_id INTEGER NOT NULL,
            medicine_id INTEGER NOT NULL,
            name TEXT NOT NULL,
            unit_price REAL NOT NULL,
            quantity INTEGER NOT NULL,
            subtotal REAL NOT NULL,
            FOREIGN KEY(transaction_id) REFERENCES transactions(id)
        );`,
		fmt.Sprintf(`INSERT INTO sqlite_sequence (name, seq)
            SELECT 'transactions', %d
            WHERE NOT EXISTS (SELECT 1 FROM sqlite_sequence WHERE name = 'transactions');`, firstTransactionID-1),
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate transaction log: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Append writes the transaction and its items in one database transaction
// and returns the assigned transaction id.
func (l *Log) Append(ctx context.Context, t domain.Transaction) (int64, error) {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO transactions (customer_name, subtotal, tax, total, created_at)
         VALUES (?, ?, ?, ?, ?) RETURNING id`,
		t.CustomerName, t.Subtotal, t.Tax, t.Total, t.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	for _, item := range t.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transaction_items (transaction_id, medicine_id, name, unit_price, quantity, subtotal)
             VALUES (?, ?, ?, ?, ?, ?)`,
			id, item.MedicineID, item.Name, item.UnitPrice, item.Quantity, item.Subtotal); err != nil {
			return 0, fmt.Errorf("insert transaction item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction append: %w", err)
	}
	return id, nil
}

// List returns the full transaction history, newest first, with items
// attached.
func (l *Log) List(ctx context.Context) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := l.db.SelectContext(ctx, &transactions,
		`SELECT id, customer_name, subtotal, tax, total, created_at FROM transactions ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if len(transactions) == 0 {
		return transactions, nil
	}

	ids := make([]int64, len(transactions))
	for i, t := range transactions {
		ids[i] = t.ID
	}
	query, args, err := sqlx.In(
		`SELECT id, transaction_id, medicine_id, name, unit_price, quantity, subtotal
         FROM transaction_items WHERE transaction_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("prepare transaction items query: %w", err)
	}
	var items []domain.TransactionItem
	if err := l.db.SelectContext(ctx, &items, l.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load transaction items: %w", err)
	}

	byTransaction := make(map[int64][]domain.TransactionItem)
	for _, item := range items {
		byTransaction[item.TransactionID] = append(byTransaction[item.TransactionID], item)
	}
	for i := range transactions {
		transactions[i].Items = byTransaction[transactions[i].ID]
	}
	return transactions, nil
}

// Summary reports the transaction count and gross revenue over the whole
// ledger.
func (l *Log) Summary(ctx context.Context) (count int64, revenue float64, err error) {
	err = l.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0) FROM transactions`).Scan(&count, &revenue)
	if err != nil {
		return 0, 0, fmt.Errorf("summarize transactions: %w", err)
	}
	return count, revenue, nil
}
