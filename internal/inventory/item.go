// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

// Package inventory holds the warehouse domain: items, their component
// pieces, and the shelf locations the pieces are stored at.
package inventory

// Location is a storage slot, uniquely identified by (room, shelf).
type Location struct {
	RoomNum          int    `json:"roomNum"`
	ShelfNum         int    `json:"shelfNum"`
	ShelfDescription string `json:"shelfDescription"`
}

// Dimensions are the physical measurements of a piece.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Piece is one physical component of an item. It sits at exactly one
// location, or none when the location join is absent.
type Piece struct {
	PieceNum    int        `json:"pieceNum"`
	Description string     `json:"description"`
	Dimensions  Dimensions `json:"dimensions"`
	Location    *Location  `json:"location"`
}

// Item is a catalogued warehouse item with its piece breakdown.
type Item struct {
	ItemID      int     `json:"itemID"`
	Description string  `json:"description"`
	Color       *string `json:"color"`
	IsNew       bool    `json:"isNew"`
	Material    *string `json:"material"`
	Pieces      []Piece `json:"pieces"`
}

// PieceLocation is the flattened answer of the item-location lookup: one
// piece joined with the location it is shelved at.
type PieceLocation struct {
	PieceNum         int     `json:"pieceNum"`
	Description      string  `json:"pDescription"`
	Length           float64 `json:"length"`
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	RoomNum          int     `json:"roomNum"`
	ShelfNum         int     `json:"shelfNum"`
	ShelfDescription string  `json:"shelfDescription"`
}

// Donation is a staff-recorded item intake with its piece placements.
type Donation struct {
	DonorUsername string
	Description   string
	Photo         string
	Color         string
	IsNew         bool
	HasPieces     bool
	Material      string
	MainCategory  string
	SubCategory   string
	Pieces        []DonatedPiece
}

// DonatedPiece is one piece of a donated item, already assigned a slot.
type DonatedPiece struct {
	PieceNum    int
	Description string
	Length      float64
	Width       float64
	Height      float64
	RoomNum     int
	ShelfNum    int
	Notes       string
}
