package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a list id is unknown.
var ErrNotFound = errors.New("list not found")

// Store provides database operations for persisted upload lists. The
// distribution set serializes to a single JSONB column so each list is
// written atomically in one statement.
type Store struct {
	db *sql.DB
}

// NewStore creates a new list store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save persists a fully constructed list as one document
func (s *Store) Save(ctx context.Context, list *List) error {
	list.ID = uuid.New()
	list.CreatedAt = time.Now()

	distributions, err := json.Marshal(list.Distributions)
	if err != nil {
		return fmt.Errorf("marshal distributions: %w", err)
	}

	query := `INSERT INTO lists (id, file_name, total_items, skipped_rows, uploaded_by, distributions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.db.ExecContext(ctx, query, list.ID, list.FileName, list.TotalItems,
		list.SkippedRows, list.UploadedBy, distributions, list.CreatedAt)
	return err
}

// FindAll retrieves all lists, newest first, with the uploader's email
// resolved for display
func (s *Store) FindAll(ctx context.Context) ([]*List, error) {
	query := `SELECT l.id, l.file_name, l.total_items, l.skipped_rows, l.uploaded_by,
		COALESCE(u.email, ''), l.distributions, l.created_at
		FROM lists l LEFT JOIN admin_users u ON u.id = l.uploaded_by
		ORDER BY l.created_at DESC, l.id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

// FindByID retrieves a single list by ID
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*List, error) {
	query := `SELECT l.id, l.file_name, l.total_items, l.skipped_rows, l.uploaded_by,
		COALESCE(u.email, ''), l.distributions, l.created_at
		FROM lists l LEFT JOIN admin_users u ON u.id = l.uploaded_by
		WHERE l.id = $1`

	list, err := scanList(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteByID removes a list by ID
func (s *Store) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanList(row rowScanner) (*List, error) {
	list := &List{}
	var distributions []byte
	err := row.Scan(&list.ID, &list.FileName, &list.TotalItems, &list.SkippedRows,
		&list.UploadedBy, &list.UploadedByEmail, &distributions, &list.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(distributions, &list.Distributions); err != nil {
		return nil, fmt.Errorf("unmarshal distributions: %w", err)
	}
	return list, nil
}
