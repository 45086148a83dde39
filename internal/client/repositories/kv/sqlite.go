package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
)

// SQLiteRepository stores pairs in the settings table. It is bound to a
// dbx.DBTX, so the same code runs against the database or inside an open
// transaction (used for the paired session token/user writes).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set settings[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete settings[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM settings`)
	if err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan settings row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings rows: %w", err)
	}

	return result, nil
}

// SelfTest writes a probe key, reads it back, and removes it. It reports
// whether the store is usable for both reads and writes.
func (r *SQLiteRepository) SelfTest(ctx context.Context) error {
	const probeKey = "storage-self-test"

	if err := r.Set(ctx, probeKey, []byte("ok")); err != nil {
		return err
	}
	v, err := r.Get(ctx, probeKey)
	if err != nil {
		return err
	}
	if string(v) != "ok" {
		return fmt.Errorf("self test read back %q, want %q", v, "ok")
	}
	return r.Delete(ctx, probeKey)
}
