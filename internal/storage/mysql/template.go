package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vue-estate/internal/storage"
)

func (s *Storage) ListTemplates(ctx context.Context) ([]*storage.ExpenseTemplate, error) {
	const op = "storage.mysql.ListTemplates"

	stmt := `SELECT id, name, description, estimation, kind FROM expense_templates ORDER BY name`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var templates []*storage.ExpenseTemplate

	for rows.Next() {
		tmpl := &storage.ExpenseTemplate{}

		err := rows.Scan(&tmpl.ID, &tmpl.Name, &tmpl.Description, &tmpl.Estimation, &tmpl.Kind)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		templates = append(templates, tmpl)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return templates, nil
}

func (s *Storage) GetTemplate(ctx context.Context, id int64) (*storage.ExpenseTemplate, error) {
	const op = "storage.mysql.GetTemplate"

	query := `SELECT id, name, description, estimation, kind FROM expense_templates WHERE id = ?`

	tmpl := &storage.ExpenseTemplate{}

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&tmpl.ID,
		&tmpl.Name,
		&tmpl.Description,
		&tmpl.Estimation,
		&tmpl.Kind,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: template %d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tmpl, nil
}

func (s *Storage) InsertTemplate(ctx context.Context, tmpl storage.ExpenseTemplate) (int64, error) {
	const op = "storage.mysql.InsertTemplate"

	stmt := `INSERT INTO expense_templates (name, description, estimation, kind) VALUES (?, ?, ?, ?)`

	exec, err := s.db.ExecContext(ctx, stmt, tmpl.Name, tmpl.Description, tmpl.Estimation, tmpl.Kind)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return exec.LastInsertId()
}

func (s *Storage) UpdateTemplate(ctx context.Context, id int64, update storage.TemplateUpdate) error {
	const op = "storage.mysql.UpdateTemplate"

	stmt := `UPDATE expense_templates SET
		name = COALESCE(?, name),
		description = COALESCE(?, description),
		estimation = CASE WHEN ? THEN NULL ELSE COALESCE(?, estimation) END,
		kind = COALESCE(?, kind)
	WHERE id = ?`

	res, err := s.db.ExecContext(ctx, stmt,
		update.Name, update.Description, update.ClearEstimation, update.Estimation, update.Kind, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		// COALESCE updates can be no-ops on identical values, so only a
		// missing row is treated as not found.
		if _, err := s.GetTemplate(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func (s *Storage) DeleteTemplate(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteTemplate"

	res, err := s.db.ExecContext(ctx, `DELETE FROM expense_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: template %d: %w", op, id, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) CountLineItemsByTemplate(ctx context.Context, templateID int64) (int64, error) {
	const op = "storage.mysql.CountLineItemsByTemplate"

	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM line_items WHERE template_id = ?`, templateID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}
