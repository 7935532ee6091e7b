// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yifei-yao/db-proj/internal/inventory"
)

func TestRepository_PieceLocations(t *testing.T) {
	columns := []string{
		"piece_num", "p_description", "length", "width", "height",
		"room_num", "shelf_num", "shelf_description",
	}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      []inventory.PieceLocation
		wantErr   bool
	}{
		{
			name: "item with pieces",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(columns).
					AddRow(1, "seat", 40.0, 40.0, 5.0, 1, 2, "back wall").
					AddRow(2, "legs", 45.0, 5.0, 5.0, 1, 3, "side rack")
				mock.ExpectQuery(`SELECT p.piece_num, p.p_description`).
					WithArgs(42).
					WillReturnRows(rows)
			},
			want: []inventory.PieceLocation{
				{PieceNum: 1, Description: "seat", Length: 40, Width: 40, Height: 5, RoomNum: 1, ShelfNum: 2, ShelfDescription: "back wall"},
				{PieceNum: 2, Description: "legs", Length: 45, Width: 5, Height: 5, RoomNum: 1, ShelfNum: 3, ShelfDescription: "side rack"},
			},
		},
		{
			name: "item with no pieces yields empty result",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT p.piece_num, p.p_description`).
					WithArgs(42).
					WillReturnRows(pgxmock.NewRows(columns))
			},
			want: nil,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT p.piece_num, p.p_description`).
					WithArgs(42).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewRepository(mock)
			got, err := repo.PieceLocations(context.Background(), 42)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestRepository_OrderItemRows(t *testing.T) {
	columns := []string{
		"item_id", "description", "color", "is_new", "material",
		"piece_num", "p_description", "length", "width", "height",
		"room_num", "shelf_num", "shelf_description",
	}

	t.Run("mixes full and piece-less rows", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		brown := "brown"
		wood := "wood"
		pieceNum := 10
		pieceDesc := "seat"
		length, width, height := 40.0, 40.0, 5.0
		room, shelf := 1, 2
		shelfDesc := "back wall"

		rows := pgxmock.NewRows(columns).
			AddRow(1, "chair", &brown, false, &wood,
				&pieceNum, &pieceDesc, &length, &width, &height,
				&room, &shelf, &shelfDesc).
			AddRow(2, "table", nil, true, nil,
				nil, nil, nil, nil, nil,
				nil, nil, nil)
		mock.ExpectQuery(`SELECT i.item_id, i.description`).
			WithArgs(7).
			WillReturnRows(rows)

		repo := NewRepository(mock)
		got, err := repo.OrderItemRows(context.Background(), 7)
		require.NoError(t, err)
		require.Len(t, got, 2)

		require.NotNil(t, got[0].PieceNum)
		assert.Equal(t, 10, *got[0].PieceNum)
		require.NotNil(t, got[0].RoomNum)
		assert.Equal(t, 1, *got[0].RoomNum)

		assert.Nil(t, got[1].PieceNum)
		assert.Nil(t, got[1].RoomNum)
		assert.True(t, got[1].IsNew)

		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`SELECT i.item_id, i.description`).
			WithArgs(7).
			WillReturnError(errors.New("connection refused"))

		repo := NewRepository(mock)
		_, err = repo.OrderItemRows(context.Background(), 7)
		require.Error(t, err)
	})
}

func TestRepository_AddDonation(t *testing.T) {
	donation := &inventory.Donation{
		DonorUsername: "alice",
		Description:   "oak chair",
		Color:         "brown",
		IsNew:         false,
		HasPieces:     true,
		Material:      "wood",
		MainCategory:  "furniture",
		SubCategory:   "seating",
		Pieces: []inventory.DonatedPiece{
			{PieceNum: 1, Description: "seat", Length: 40, Width: 40, Height: 5, RoomNum: 1, ShelfNum: 2},
			{PieceNum: 2, Description: "legs", Length: 45, Width: 5, Height: 5, RoomNum: 1, ShelfNum: 3, Notes: "fragile"},
		},
	}

	t.Run("inserts item and pieces in one transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO items`).
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			).
			WillReturnRows(pgxmock.NewRows([]string{"item_id"}).AddRow(99))
		mock.ExpectExec(`INSERT INTO pieces`).
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`INSERT INTO pieces`).
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		repo := NewRepository(mock)
		itemID, err := repo.AddDonation(context.Background(), donation)
		require.NoError(t, err)
		assert.Equal(t, 99, itemID)

		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("piece failure rolls back", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO items`).
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			).
			WillReturnRows(pgxmock.NewRows([]string{"item_id"}).AddRow(99))
		mock.ExpectExec(`INSERT INTO pieces`).
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			).
			WillReturnError(errors.New("no such shelf"))
		mock.ExpectRollback()

		repo := NewRepository(mock)
		_, err = repo.AddDonation(context.Background(), donation)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no such shelf")

		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}
