package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aevon-lab/tillsync/internal/core/storage"
	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// mapWriteError converts driver errors into storage sentinels.
func mapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", storage.ErrConflict, pqErr.Constraint)
	}
	return err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanDocument scans an (id, body) row and decodes the JSON body into dst.
func scanDocument(row scanner, dst interface{}) (string, error) {
	var (
		id   string
		body []byte
	)
	if err := row.Scan(&id, &body); err != nil {
		if err == sql.ErrNoRows {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("failed to scan document row: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return "", fmt.Errorf("failed to unmarshal document %s: %w", id, err)
	}
	return id, nil
}

// nullString maps "" to SQL NULL so the partial unique index on order_id only sees orders.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
