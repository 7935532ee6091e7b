// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

// Package postgres implements the inventory repository using PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/yifei-yao/db-proj/internal/inventory"
)

// poolIface is the subset of pgxpool.Pool used by this repository.
// pgxmock.PgxPoolIface satisfies it, allowing tests without a database.
type poolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository implements inventory.Repository using PostgreSQL.
type Repository struct {
	pool poolIface
}

// NewRepository creates a new Repository.
func NewRepository(pool poolIface) *Repository {
	return &Repository{pool: pool}
}

// PieceLocations joins pieces with locations on the shared (room, shelf)
// key, filtered by item. Zero rows is a valid empty result; the service
// layer decides whether that is an error.
func (r *Repository) PieceLocations(ctx context.Context, itemID int) ([]inventory.PieceLocation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.piece_num, p.p_description, p.length, p.width, p.height,
		       p.room_num, p.shelf_num, l.shelf_description
		FROM pieces p
		JOIN locations l ON l.room_num = p.room_num AND l.shelf_num = p.shelf_num
		WHERE p.item_id = $1
		ORDER BY p.piece_num
	`, itemID)
	if err != nil {
		return nil, oops.Code("PIECE_LOCATIONS_FAILED").
			With("operation", "query piece locations").
			With("item_id", itemID).
			Wrap(err)
	}
	defer rows.Close()

	var pieces []inventory.PieceLocation
	for rows.Next() {
		var p inventory.PieceLocation
		if err := rows.Scan(
			&p.PieceNum, &p.Description, &p.Length, &p.Width, &p.Height,
			&p.RoomNum, &p.ShelfNum, &p.ShelfDescription,
		); err != nil {
			return nil, oops.Code("PIECE_LOCATIONS_FAILED").
				With("operation", "scan piece location row").
				Wrap(err)
		}
		pieces = append(pieces, p)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("PIECE_LOCATIONS_FAILED").
			With("operation", "iterate piece locations").
			Wrap(err)
	}

	return pieces, nil
}

// OrderItemRows returns the flat item×piece×location rows for an order.
// The piece and location joins are optional, so their columns scan into
// pointers. Row order drives the aggregator's item ordering.
func (r *Repository) OrderItemRows(ctx context.Context, orderID int) ([]inventory.ItemRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.item_id, i.description, i.color, i.is_new, i.material,
		       p.piece_num, p.p_description, p.length, p.width, p.height,
		       l.room_num, l.shelf_num, l.shelf_description
		FROM itemsin ii
		JOIN items i ON i.item_id = ii.item_id
		LEFT JOIN pieces p ON p.item_id = i.item_id
		LEFT JOIN locations l ON l.room_num = p.room_num AND l.shelf_num = p.shelf_num
		WHERE ii.order_id = $1
		ORDER BY i.item_id, p.piece_num
	`, orderID)
	if err != nil {
		return nil, oops.Code("ORDER_ITEM_ROWS_FAILED").
			With("operation", "query order item rows").
			With("order_id", orderID).
			Wrap(err)
	}
	defer rows.Close()

	var result []inventory.ItemRow
	for rows.Next() {
		var row inventory.ItemRow
		if err := rows.Scan(
			&row.ItemID, &row.Description, &row.Color, &row.IsNew, &row.Material,
			&row.PieceNum, &row.PieceDesc, &row.Length, &row.Width, &row.Height,
			&row.RoomNum, &row.ShelfNum, &row.ShelfDesc,
		); err != nil {
			return nil, oops.Code("ORDER_ITEM_ROWS_FAILED").
				With("operation", "scan order item row").
				Wrap(err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ORDER_ITEM_ROWS_FAILED").
			With("operation", "iterate order item rows").
			Wrap(err)
	}

	return result, nil
}

// AddDonation inserts the item and its pieces in a single transaction and
// returns the generated item ID.
func (r *Repository) AddDonation(ctx context.Context, donation *inventory.Donation) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, oops.Code("DONATION_INSERT_FAILED").
			With("operation", "begin transaction").
			Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // No-op after commit

	var itemID int
	err = tx.QueryRow(ctx, `
		INSERT INTO items (
			description, photo, color, is_new, has_pieces,
			material, main_category, sub_category, donated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING item_id
	`,
		donation.Description,
		nullable(donation.Photo),
		nullable(donation.Color),
		donation.IsNew,
		donation.HasPieces,
		nullable(donation.Material),
		donation.MainCategory,
		donation.SubCategory,
		nullable(donation.DonorUsername),
	).Scan(&itemID)
	if err != nil {
		return 0, oops.Code("DONATION_INSERT_FAILED").
			With("operation", "insert item").
			Wrap(err)
	}

	for _, piece := range donation.Pieces {
		_, err = tx.Exec(ctx, `
			INSERT INTO pieces (
				item_id, piece_num, p_description,
				length, width, height, room_num, shelf_num, p_notes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			itemID,
			piece.PieceNum,
			piece.Description,
			piece.Length,
			piece.Width,
			piece.Height,
			piece.RoomNum,
			piece.ShelfNum,
			nullable(piece.Notes),
		)
		if err != nil {
			return 0, oops.Code("DONATION_INSERT_FAILED").
				With("operation", "insert piece").
				With("piece_num", piece.PieceNum).
				Wrap(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, oops.Code("DONATION_INSERT_FAILED").
			With("operation", "commit transaction").
			Wrap(err)
	}

	return itemID, nil
}

// nullable maps an empty string to NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Compile-time interface check.
var _ inventory.Repository = (*Repository)(nil)
