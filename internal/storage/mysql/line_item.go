package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"vue-estate/internal/storage"
)

// MySQL error 1452: foreign key constraint fails on insert.
const errFKConstraint = 1452

func (s *Storage) ListLineItems(ctx context.Context, viewingID int64) ([]*storage.LineItem, error) {
	const op = "storage.mysql.ListLineItems"

	stmt := `SELECT id, viewing_id, template_id, description, amount, created_at
		FROM line_items WHERE viewing_id = ? ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, stmt, viewingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []*storage.LineItem

	for rows.Next() {
		item := &storage.LineItem{}

		err := rows.Scan(&item.ID, &item.ViewingID, &item.TemplateID, &item.Description, &item.Amount, &item.CreatedAT)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return items, nil
}

func (s *Storage) GetLineItem(ctx context.Context, id int64) (*storage.LineItem, error) {
	const op = "storage.mysql.GetLineItem"

	query := `SELECT id, viewing_id, template_id, description, amount, created_at
		FROM line_items WHERE id = ?`

	item := &storage.LineItem{}

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.ViewingID,
		&item.TemplateID,
		&item.Description,
		&item.Amount,
		&item.CreatedAT,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: line item %d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (s *Storage) InsertLineItem(ctx context.Context, item storage.NewLineItem) (int64, error) {
	const op = "storage.mysql.InsertLineItem"

	stmt := `INSERT INTO line_items (viewing_id, template_id, description, amount) VALUES (?, ?, ?, ?)`

	exec, err := s.db.ExecContext(ctx, stmt, item.ViewingID, item.TemplateID, item.Description, item.Amount)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == errFKConstraint {
			return 0, fmt.Errorf("%s: viewing or template missing: %w", op, storage.ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return exec.LastInsertId()
}

// InsertLineItems writes a batch inside one transaction with a prepared
// statement; callers hand it only items for templates with no existing row.
func (s *Storage) InsertLineItems(ctx context.Context, items []storage.NewLineItem) error {
	const op = "storage.mysql.InsertLineItems"

	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO line_items (viewing_id, template_id, description, amount) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	for _, item := range items {
		_, err := stmt.ExecContext(ctx, item.ViewingID, item.TemplateID, item.Description, item.Amount)
		if err != nil {
			if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == errFKConstraint {
				return fmt.Errorf("%s: viewing or template missing: %w", op, storage.ErrNotFound)
			}
			return fmt.Errorf("%s: insert: %w", op, err)
		}
	}

	return tx.Commit()
}

func (s *Storage) UpdateLineItem(ctx context.Context, id int64, update storage.LineItemUpdate) error {
	const op = "storage.mysql.UpdateLineItem"

	stmt := `UPDATE line_items SET
		description = COALESCE(?, description),
		amount = COALESCE(?, amount)
	WHERE id = ?`

	res, err := s.db.ExecContext(ctx, stmt, update.Description, update.Amount, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		if _, err := s.GetLineItem(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func (s *Storage) DeleteLineItem(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteLineItem"

	res, err := s.db.ExecContext(ctx, `DELETE FROM line_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: line item %d: %w", op, id, storage.ErrNotFound)
	}

	return nil
}
