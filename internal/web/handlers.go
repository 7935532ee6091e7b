// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/oops"

	"github.com/yifei-yao/db-proj/internal/auth"
	"github.com/yifei-yao/db-proj/internal/inventory"
	"github.com/yifei-yao/db-proj/internal/observability"
)

type handlers struct {
	auth    AuthService
	inv     InventoryService
	gate    *auth.Gate
	metrics *observability.Metrics
}

// validationCode reports whether an error code marks bad client input, as
// opposed to an internal failure.
func validationCode(err error) bool {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	switch oopsErr.Code() {
	case "AUTH_INVALID_USERNAME", "AUTH_INVALID_INPUT", "DONATION_INVALID":
		return true
	}
	return false
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// handleRegister accepts the form-encoded registration submission.
func (h *handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	user, err := h.auth.Register(r.Context(), auth.RegisterParams{
		FirstName:      r.PostFormValue("first_name"),
		LastName:       r.PostFormValue("last_name"),
		Username:       r.PostFormValue("username"),
		Password:       r.PostFormValue("password"),
		Role:           r.PostFormValue("role"),
		BillingAddress: r.PostFormValue("billing_address"),
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateUsername):
			writeDetail(w, http.StatusBadRequest, "Username already registered")
		case validationCode(err):
			writeDetail(w, http.StatusBadRequest, err.Error())
		default:
			writeInternalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, registerResponse{
		Success: true,
		Message: "User " + user.Username + " registered successfully",
	})
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// handleLogin accepts form-encoded credentials and returns a bearer token.
func (h *handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.countLogin("failure")
			writeDetail(w, http.StatusBadRequest, "Incorrect username or password")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	h.countLogin("success")
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *handlers) countLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}

type userInfoResponse struct {
	Username       string  `json:"username"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Role           string  `json:"role"`
	BillingAddress *string `json:"billing_address"`
}

func (h *handlers) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	username, _ := UsernameFromContext(r.Context())

	user, err := h.auth.UserInfo(r.Context(), username)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			// Valid token, but its subject no longer exists.
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userInfoResponse{
		Username:       user.Username,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Role:           user.Role,
		BillingAddress: user.BillingAddress,
	})
}

func (h *handlers) handleItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "item_id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Item ID must be an integer")
		return
	}

	pieces, err := h.inv.ItemLocations(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Item not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"item_id": itemID,
		"pieces":  pieces,
	})
}

func (h *handlers) handleOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "order_id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Order ID must be an integer")
		return
	}

	items, err := h.inv.OrderItems(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Order not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orderID": orderID,
		"items":   items,
	})
}

// handleDonate records an item intake. Staff only.
func (h *handlers) handleDonate(w http.ResponseWriter, r *http.Request) {
	username, _ := UsernameFromContext(r.Context())

	user, err := h.auth.UserInfo(r.Context(), username)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}
	if user.Role != auth.RoleStaff {
		writeDetail(w, http.StatusForbidden, "Only staff members can accept donations")
		return
	}

	donation, err := parseDonationForm(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	itemID, err := h.inv.Donate(r.Context(), donation)
	if err != nil {
		if validationCode(err) {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.DonationsTotal.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]int{"item_id": itemID})
}
