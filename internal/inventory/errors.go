// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package inventory

import "errors"

// ErrNotFound is returned when a lookup that requires matching rows finds
// none: an item with no registered pieces, or an order with no items.
var ErrNotFound = errors.New("not found")
