// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package controlapi implements the sibling HTTP surface served at
// "api." + public_host (spec §4.6): a diagnostic index page and a POST
// /encode endpoint that exposes the URL codec's encoder as a service.
package controlapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/weirdproxy/subproxy/internal/codec"
	"github.com/weirdproxy/subproxy/internal/config"
)

// encodeRequest is the JSON body POST /encode accepts.
type encodeRequest struct {
	URL string `json:"url"`
}

// encodeResponse is the JSON body POST /encode returns.
type encodeResponse struct {
	EncodedURL string `json:"encoded_url"`
}

// New builds the control API router.
func New(cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Hello, world! Configured host: " + cfg.Host))
	})

	r.Post("/encode", func(w http.ResponseWriter, r *http.Request) {
		var req encodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		encoded := codec.EncodeURL(cfg.Algorithm, cfg.PublicHost, req.URL)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(encodeResponse{EncodedURL: encoded})
	})

	return r
}
