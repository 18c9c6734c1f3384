// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package server wires the shared config, outbound client, HTML rewriter,
// forwarding engine, control API and hostname router into the single
// http.Handler the process listens with (spec §3 "SharedState... Lifecycle:
// built at serve() entry, freed at graceful shutdown").
package server

import (
	"net/http"

	"github.com/weirdproxy/subproxy/internal/codec"
	"github.com/weirdproxy/subproxy/internal/config"
	"github.com/weirdproxy/subproxy/internal/controlapi"
	"github.com/weirdproxy/subproxy/internal/forward"
	"github.com/weirdproxy/subproxy/internal/httpclient"
	"github.com/weirdproxy/subproxy/internal/rewrite"
	"github.com/weirdproxy/subproxy/internal/router"
)

// New constructs the top-level handler. It is the only place in the repo
// that allocates the outbound client and the HTML rewriter, so both are
// guaranteed to be singletons shared read-only across every request.
func New(cfg config.Config) http.Handler {
	client := httpclient.New(cfg.RequestTimeout)

	encode := func(rawURL string) string {
		return codec.EncodeURL(cfg.Algorithm, cfg.PublicHost, rawURL)
	}
	htmlRewriter := rewrite.New(encode)

	engine := forward.New(cfg, client, htmlRewriter)
	api := controlapi.New(cfg)

	return router.New(cfg.PublicHost, api, engine)
}
