// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package inventory

import (
	"context"

	"github.com/samber/oops"
)

// Repository executes the parameterized warehouse queries.
type Repository interface {
	// PieceLocations returns the piece/location join rows for an item.
	// Zero matching rows yields an empty slice, not an error.
	PieceLocations(ctx context.Context, itemID int) ([]PieceLocation, error)

	// OrderItemRows returns the flat item×piece×location rows for every
	// item associated with an order, in query order.
	OrderItemRows(ctx context.Context, orderID int) ([]ItemRow, error)

	// AddDonation inserts a donated item and its pieces in one
	// transaction and returns the new item ID.
	AddDonation(ctx context.Context, donation *Donation) (int, error)
}

// Service answers item and order lookups and records donations.
type Service struct {
	repo Repository
}

// NewService creates a new Service.
func NewService(repo Repository) (*Service, error) {
	if repo == nil {
		return nil, oops.Code("INVENTORY_INVALID_DEPS").Errorf("repository is required")
	}
	return &Service{repo: repo}, nil
}

// ItemLocations resolves an item to the locations of its pieces. An item
// with zero registered pieces is ErrNotFound here — unlike the order flow,
// where a piece-less item is a valid entry with an empty list.
func (s *Service) ItemLocations(ctx context.Context, itemID int) ([]PieceLocation, error) {
	pieces, err := s.repo.PieceLocations(ctx, itemID)
	if err != nil {
		return nil, oops.Code("ITEM_LOOKUP_FAILED").
			With("operation", "query piece locations").
			With("item_id", itemID).
			Wrap(err)
	}
	if len(pieces) == 0 {
		return nil, oops.Code("ITEM_NOT_FOUND").
			With("item_id", itemID).
			Wrap(ErrNotFound)
	}
	return pieces, nil
}

// OrderItems returns the aggregated item breakdown for an order. An order
// with no associated items is ErrNotFound.
func (s *Service) OrderItems(ctx context.Context, orderID int) ([]Item, error) {
	rows, err := s.repo.OrderItemRows(ctx, orderID)
	if err != nil {
		return nil, oops.Code("ORDER_LOOKUP_FAILED").
			With("operation", "query order item rows").
			With("order_id", orderID).
			Wrap(err)
	}

	items := GroupItems(rows)
	if len(items) == 0 {
		return nil, oops.Code("ORDER_NOT_FOUND").
			With("order_id", orderID).
			Wrap(ErrNotFound)
	}
	return items, nil
}

// Donate records an item intake and returns the new item ID.
func (s *Service) Donate(ctx context.Context, donation *Donation) (int, error) {
	if donation.Description == "" {
		return 0, oops.Code("DONATION_INVALID").Errorf("item description is required")
	}

	itemID, err := s.repo.AddDonation(ctx, donation)
	if err != nil {
		return 0, oops.Code("DONATION_FAILED").
			With("operation", "insert donation").
			Wrap(err)
	}
	return itemID, nil
}
