// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package inventory

// ItemRow is one flat row of the item × piece × location join. Piece and
// location columns come from optional joins and are nil when absent.
type ItemRow struct {
	ItemID      int
	Description string
	Color       *string
	IsNew       bool
	Material    *string

	PieceNum  *int
	PieceDesc *string
	Length    *float64
	Width     *float64
	Height    *float64

	RoomNum   *int
	ShelfNum  *int
	ShelfDesc *string
}

// GroupItems folds flat join rows into nested items. Items appear in the
// order their item ID first occurs in the input; rows sharing an item ID
// merge into a single entry. A nil piece number contributes no piece, so an
// item whose rows all lack pieces comes out with an empty piece list rather
// than being omitted. Rows are otherwise passed through as-is: a repeated
// (item, piece) pair from a fan-out join produces a piece entry per row.
func GroupItems(rows []ItemRow) []Item {
	items := make([]Item, 0, len(rows))
	index := make(map[int]int, len(rows))

	for _, row := range rows {
		i, seen := index[row.ItemID]
		if !seen {
			i = len(items)
			index[row.ItemID] = i
			items = append(items, Item{
				ItemID:      row.ItemID,
				Description: row.Description,
				Color:       row.Color,
				IsNew:       row.IsNew,
				Material:    row.Material,
				Pieces:      []Piece{},
			})
		}

		if row.PieceNum == nil {
			continue
		}

		piece := Piece{
			PieceNum:   *row.PieceNum,
			Dimensions: Dimensions{},
		}
		if row.PieceDesc != nil {
			piece.Description = *row.PieceDesc
		}
		if row.Length != nil {
			piece.Dimensions.Length = *row.Length
		}
		if row.Width != nil {
			piece.Dimensions.Width = *row.Width
		}
		if row.Height != nil {
			piece.Dimensions.Height = *row.Height
		}
		if row.RoomNum != nil && row.ShelfNum != nil {
			loc := Location{
				RoomNum:  *row.RoomNum,
				ShelfNum: *row.ShelfNum,
			}
			if row.ShelfDesc != nil {
				loc.ShelfDescription = *row.ShelfDesc
			}
			piece.Location = &loc
		}

		items[i].Pieces = append(items[i].Pieces, piece)
	}

	return items
}
