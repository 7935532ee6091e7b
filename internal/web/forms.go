// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/samber/oops"

	"github.com/yifei-yao/db-proj/internal/inventory"
)

// flexInt decodes from either a JSON number or a numeric string. The
// donation form serializes piece fields from text inputs, so "3" and 3
// must both parse.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return oops.Errorf("not an integer: %q", s)
	}
	*f = flexInt(n)
	return nil
}

// flexFloat is flexInt's float counterpart.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return oops.Errorf("not a number: %q", s)
	}
	*f = flexFloat(n)
	return nil
}

// pieceForm mirrors the piece_data entries the donation form submits.
type pieceForm struct {
	PieceNum    flexInt   `json:"pieceNum"`
	Description string    `json:"pDescription"`
	Length      flexFloat `json:"length"`
	Width       flexFloat `json:"width"`
	Height      flexFloat `json:"height"`
	RoomNum     flexInt   `json:"roomNum"`
	ShelfNum    flexInt   `json:"shelfNum"`
	Notes       string    `json:"pNotes"`
}

// parseDonationForm decodes the form-encoded donation submission. The
// item attributes arrive as flat form fields; the pieces arrive in the
// piece_data field as a JSON array.
func parseDonationForm(r *http.Request) (*inventory.Donation, error) {
	if err := r.ParseForm(); err != nil {
		return nil, oops.Errorf("invalid form data")
	}

	donation := &inventory.Donation{
		DonorUsername: r.PostFormValue("donor_username"),
		Description:   r.PostFormValue("item_description"),
		Photo:         r.PostFormValue("photo"),
		Color:         r.PostFormValue("color"),
		Material:      r.PostFormValue("material"),
		MainCategory:  r.PostFormValue("main_category"),
		SubCategory:   r.PostFormValue("sub_category"),
	}

	if v := r.PostFormValue("is_new"); v != "" {
		isNew, err := strconv.ParseBool(v)
		if err != nil {
			return nil, oops.Errorf("is_new must be a boolean")
		}
		donation.IsNew = isNew
	}
	if v := r.PostFormValue("has_pieces"); v != "" {
		hasPieces, err := strconv.ParseBool(v)
		if err != nil {
			return nil, oops.Errorf("has_pieces must be a boolean")
		}
		donation.HasPieces = hasPieces
	}

	if donation.Description == "" {
		return nil, oops.Errorf("item_description is required")
	}
	if donation.MainCategory == "" || donation.SubCategory == "" {
		return nil, oops.Errorf("main_category and sub_category are required")
	}

	if raw := r.PostFormValue("piece_data"); raw != "" && raw != "[]" {
		var forms []pieceForm
		if err := json.Unmarshal([]byte(raw), &forms); err != nil {
			return nil, oops.Errorf("piece_data must be a JSON array")
		}
		for _, p := range forms {
			donation.Pieces = append(donation.Pieces, inventory.DonatedPiece{
				PieceNum:    int(p.PieceNum),
				Description: p.Description,
				Length:      float64(p.Length),
				Width:       float64(p.Width),
				Height:      float64(p.Height),
				RoomNum:     int(p.RoomNum),
				ShelfNum:    int(p.ShelfNum),
				Notes:       p.Notes,
			})
		}
	}

	return donation, nil
}
