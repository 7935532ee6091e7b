// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package web

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// spaHandler serves the prebuilt frontend bundle. Requests that match a
// real file under dir get that file; everything else gets index.html so
// the client-side router owns unknown paths.
func spaHandler(dir string) http.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	fileServer := http.FileServer(http.Dir(dir))

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeDetail(w, http.StatusNotFound, "Not found")
			return
		}

		// Reject traversal before touching the filesystem.
		rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
		target := filepath.Join(dir, rel)

		info, err := os.Stat(target)
		if err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, index)
	}
}
