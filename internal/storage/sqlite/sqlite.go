// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

const (
	kindAssigned = "assigned"
	kindSnapshot = "snapshot"
)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection setting, so ask the driver to enable
	// them on every connection it opens.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateBill persists a new bill to the database.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	bill.UpdatedAt = bill.CreatedAt
	if bill.Title == "" {
		bill.Title = generateTitle(bill.Participants())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	c := bill.Currency()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO bills (id, title, currency_code, currency_symbol, currency_name, currency_decimals,
		 passcode_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.Title, c.Code, c.Symbol, c.Name, c.Places(),
		bill.PasscodeHash, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := insertContents(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateBill rewrites the bill row and replaces its participants and items.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updatedAt := time.Now().Unix()
	c := bill.Currency()
	res, err := tx.ExecContext(ctx,
		`UPDATE bills SET title = ?, currency_code = ?, currency_symbol = ?, currency_name = ?,
		 currency_decimals = ?, passcode_hash = ?, updated_at = ? WHERE id = ?`,
		bill.Title, c.Code, c.Symbol, c.Name, c.Places(), bill.PasscodeHash, updatedAt, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	} else if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, bill.ID)
	}

	if err := deleteContents(ctx, tx, bill.ID); err != nil {
		return err
	}
	if err := insertContents(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	bill.UpdatedAt = updatedAt
	return nil
}

// DeleteBill removes a bill with its participants and items.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteContents(ctx, tx, billID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	} else if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, billID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID, including all items and participants.
// Rows are reassembled into a models.BillRecord and loaded through
// models.FromRecord, so stored prices are repaired the same way imports are.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	var (
		rec                  models.BillRecord
		title, passcodeHash  string
		createdAt, updatedAt int64
		currencyDecimals     int32
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT title, currency_code, currency_symbol, currency_name, currency_decimals,
		 passcode_hash, created_at, updated_at FROM bills WHERE id = ?`,
		billID,
	).Scan(&title, &rec.Currency.Code, &rec.Currency.Symbol, &rec.Currency.Name, &currencyDecimals,
		&passcodeHash, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, billID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	rec.Currency.Decimals = &currencyDecimals

	if rec.Participants, err = s.getParticipants(ctx, billID); err != nil {
		return nil, err
	}
	if rec.Items, err = s.getItems(ctx, billID); err != nil {
		return nil, err
	}

	bill := models.FromRecord(rec)
	bill.ID = billID
	bill.Title = title
	bill.PasscodeHash = passcodeHash
	bill.CreatedAt = createdAt
	bill.UpdatedAt = updatedAt
	return bill, nil
}

func (s *SQLiteStore) getParticipants(ctx context.Context, billID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM participants WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	participants := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

func (s *SQLiteStore) getItems(ctx context.Context, billID string) ([]models.ItemRecord, error) {
	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price, paid_by FROM items WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	items := []models.ItemRecord{}
	index := make(map[string]int)
	for itemRows.Next() {
		item := models.ItemRecord{AssignedTo: []string{}, ParticipantsAtTime: []string{}}
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Price, &item.PaidBy); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		index[item.ID] = len(items)
		items = append(items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	itemRows.Close()

	consumerRows, err := s.db.QueryContext(ctx,
		`SELECT item_id, kind, participant FROM item_consumers
		 WHERE bill_id = ? ORDER BY item_id, kind, position`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item consumers: %w", err)
	}
	defer consumerRows.Close()

	for consumerRows.Next() {
		var itemID, kind, participant string
		if err := consumerRows.Scan(&itemID, &kind, &participant); err != nil {
			return nil, fmt.Errorf("failed to scan item consumer: %w", err)
		}
		i, ok := index[itemID]
		if !ok {
			continue
		}
		switch kind {
		case kindAssigned:
			items[i].AssignedTo = append(items[i].AssignedTo, participant)
		case kindSnapshot:
			items[i].ParticipantsAtTime = append(items[i].ParticipantsAtTime, participant)
		}
	}
	if err := consumerRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item consumers: %w", err)
	}
	return items, nil
}

// insertContents writes the participants, items and item consumers of bill.
func insertContents(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	rec := models.ToRecord(bill)

	for pos, name := range rec.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO participants (bill_id, position, name) VALUES (?, ?, ?)",
			bill.ID, pos, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for pos, item := range rec.Items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (id, bill_id, position, name, price, paid_by) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, bill.ID, pos, item.Name, item.Price, item.PaidBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		if err := insertConsumers(ctx, tx, bill.ID, item.ID, kindAssigned, item.AssignedTo); err != nil {
			return err
		}
		if err := insertConsumers(ctx, tx, bill.ID, item.ID, kindSnapshot, item.ParticipantsAtTime); err != nil {
			return err
		}
	}
	return nil
}

func insertConsumers(ctx context.Context, tx *sql.Tx, billID, itemID, kind string, names []string) error {
	for pos, name := range names {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO item_consumers (bill_id, item_id, kind, position, participant) VALUES (?, ?, ?, ?, ?)",
			billID, itemID, kind, pos, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item consumer: %w", err)
		}
	}
	return nil
}

// deleteContents removes the participants and items of a bill, leaving the bill row.
func deleteContents(ctx context.Context, tx *sql.Tx, billID string) error {
	statements := []string{
		"DELETE FROM item_consumers WHERE bill_id = ?",
		"DELETE FROM items WHERE bill_id = ?",
		"DELETE FROM participants WHERE bill_id = ?",
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, billID); err != nil {
			return fmt.Errorf("failed to clear bill contents: %w", err)
		}
	}
	return nil
}

// generateTitle creates an auto-generated title from participants.
func generateTitle(participants []string) string {
	if len(participants) == 0 {
		return fmt.Sprintf("Bill - %s", time.Now().Format("Jan 2, 2006"))
	}
	if len(participants) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(participants, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(participants[:2], ", "),
		len(participants)-2,
	)
}
