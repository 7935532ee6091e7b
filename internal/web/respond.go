// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// detailBody is the error payload shape the frontend expects.
type detailBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, detailBody{Detail: msg})
}

// writeInternalError logs the real error and returns an opaque 500 so
// storage details never leak to clients.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}
