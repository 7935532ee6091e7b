// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yifei-yao/db-proj/internal/inventory"
)

func ptr[T any](v T) *T { return &v }

// row builds a full join row with a piece and a location.
func row(itemID int, desc string, pieceNum, roomNum, shelfNum int) inventory.ItemRow {
	return inventory.ItemRow{
		ItemID:      itemID,
		Description: desc,
		Color:       ptr("brown"),
		IsNew:       false,
		Material:    ptr("wood"),
		PieceNum:    ptr(pieceNum),
		PieceDesc:   ptr("part"),
		Length:      ptr(10.0),
		Width:       ptr(5.0),
		Height:      ptr(2.5),
		RoomNum:     ptr(roomNum),
		ShelfNum:    ptr(shelfNum),
		ShelfDesc:   ptr("back wall"),
	}
}

// bareRow builds a row whose optional piece/location joins are absent.
func bareRow(itemID int, desc string) inventory.ItemRow {
	return inventory.ItemRow{ItemID: itemID, Description: desc}
}

func TestGroupItems(t *testing.T) {
	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, inventory.GroupItems(nil))
		assert.Empty(t, inventory.GroupItems([]inventory.ItemRow{}))
	})

	t.Run("rows sharing an item id merge into one item", func(t *testing.T) {
		items := inventory.GroupItems([]inventory.ItemRow{
			row(1, "chair", 10, 1, 2),
			row(1, "chair", 11, 1, 3),
		})
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].ItemID)
		require.Len(t, items[0].Pieces, 2)
		assert.Equal(t, 10, items[0].Pieces[0].PieceNum)
		assert.Equal(t, 11, items[0].Pieces[1].PieceNum)
	})

	t.Run("item order follows first appearance", func(t *testing.T) {
		items := inventory.GroupItems([]inventory.ItemRow{
			row(7, "lamp", 1, 1, 1),
			row(3, "desk", 1, 1, 2),
			row(7, "lamp", 2, 1, 3),
			row(5, "rug", 1, 2, 1),
		})
		require.Len(t, items, 3)
		assert.Equal(t, []int{7, 3, 5}, []int{items[0].ItemID, items[1].ItemID, items[2].ItemID})
	})

	t.Run("null piece number yields an empty piece list, not a null entry", func(t *testing.T) {
		items := inventory.GroupItems([]inventory.ItemRow{bareRow(2, "table")})
		require.Len(t, items, 1)
		assert.NotNil(t, items[0].Pieces)
		assert.Empty(t, items[0].Pieces)
	})

	t.Run("piece without location keeps a nil location", func(t *testing.T) {
		r := row(1, "chair", 10, 1, 2)
		r.RoomNum = nil
		r.ShelfNum = nil
		r.ShelfDesc = nil

		items := inventory.GroupItems([]inventory.ItemRow{r})
		require.Len(t, items, 1)
		require.Len(t, items[0].Pieces, 1)
		assert.Nil(t, items[0].Pieces[0].Location)
	})

	t.Run("fan-out duplicates pass through as repeated pieces", func(t *testing.T) {
		items := inventory.GroupItems([]inventory.ItemRow{
			row(1, "chair", 10, 1, 2),
			row(1, "chair", 10, 1, 2),
		})
		require.Len(t, items, 1)
		assert.Len(t, items[0].Pieces, 2)
	})

	t.Run("repeated aggregation is deterministic", func(t *testing.T) {
		rows := []inventory.ItemRow{
			row(1, "chair", 10, 1, 2),
			bareRow(2, "table"),
			row(1, "chair", 11, 1, 3),
		}
		first := inventory.GroupItems(rows)
		second := inventory.GroupItems(rows)
		assert.Equal(t, first, second)
	})

	t.Run("order scenario: two pieces and a piece-less item", func(t *testing.T) {
		r1 := row(1, "chair", 10, 1, 2)
		r2 := row(1, "chair", 11, 1, 3)
		r3 := bareRow(2, "table")

		items := inventory.GroupItems([]inventory.ItemRow{r1, r2, r3})
		require.Len(t, items, 2)

		chair := items[0]
		assert.Equal(t, 1, chair.ItemID)
		assert.Equal(t, "chair", chair.Description)
		require.Len(t, chair.Pieces, 2)
		require.NotNil(t, chair.Pieces[0].Location)
		assert.Equal(t, inventory.Location{RoomNum: 1, ShelfNum: 2, ShelfDescription: "back wall"}, *chair.Pieces[0].Location)
		require.NotNil(t, chair.Pieces[1].Location)
		assert.Equal(t, 3, chair.Pieces[1].Location.ShelfNum)

		table := items[1]
		assert.Equal(t, 2, table.ItemID)
		assert.Empty(t, table.Pieces)
	})

	t.Run("piece fields carry over", func(t *testing.T) {
		items := inventory.GroupItems([]inventory.ItemRow{row(1, "chair", 10, 1, 2)})
		require.Len(t, items, 1)
		piece := items[0].Pieces[0]
		assert.Equal(t, "part", piece.Description)
		assert.Equal(t, inventory.Dimensions{Length: 10.0, Width: 5.0, Height: 2.5}, piece.Dimensions)
	})
}
