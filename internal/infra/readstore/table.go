package readstore

import (
	"context"

	"tablebook/internal/domain/table"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"

	"github.com/google/uuid"
)

type TableReadStore struct {
	db db.DBTX
}

func NewTableReadStore(dbtx db.DBTX) *TableReadStore {
	return &TableReadStore{db: dbtx}
}

func (s *TableReadStore) Tables(ctx context.Context, restaurantID uuid.UUID) ([]table.Table, error) {
	const query = `
		SELECT t.id, t.group_id, t.name, t.min_capacity, t.max_capacity,
		       t.table_type, t.sort_order, t.can_combine, t.operational_status, t.bookable
		FROM tables t
		JOIN table_groups g ON g.id = t.group_id
		WHERE t.restaurant_id = $1
		ORDER BY g.sort_order, t.sort_order`

	rows, err := s.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}
	defer rows.Close()

	var out []table.Table
	for rows.Next() {
		var t table.Table
		if err := rows.Scan(
			&t.ID, &t.GroupID, &t.Name, &t.MinCapacity, &t.MaxCapacity,
			&t.Type, &t.SortOrder, &t.CanCombine, &t.Status, &t.Bookable,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan table row", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate table rows", err)
	}
	return out, nil
}

func (s *TableReadStore) Groups(ctx context.Context, restaurantID uuid.UUID) ([]table.Group, error) {
	const query = `
		SELECT id, name, sort_order
		FROM table_groups
		WHERE restaurant_id = $1
		ORDER BY sort_order`

	rows, err := s.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list table groups", err)
	}
	defer rows.Close()

	var out []table.Group
	for rows.Next() {
		var g table.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.SortOrder); err != nil {
			return nil, infra.WrapRepoErr("failed to scan table group row", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate table group rows", err)
	}
	return out, nil
}
