package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vue-estate/internal/storage"
)

func (s *Storage) GetViewing(ctx context.Context, id int64) (*storage.Viewing, error) {
	const op = "storage.mysql.GetViewing"

	query := `SELECT id, address, price, expected_minimal_rent, archived, created_at
		FROM viewings WHERE id = ?`

	viewing := &storage.Viewing{}

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&viewing.ID,
		&viewing.Address,
		&viewing.Price,
		&viewing.ExpectedMinimalRent,
		&viewing.Archived,
		&viewing.CreatedAT,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: viewing %d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return viewing, nil
}
