// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package forward implements the forwarding engine (spec §4.3): it maps an
// inbound request onto the origin decoded from the Host header, dispatches
// HTML bodies through the rewriter, streams everything else, and bridges
// WebSocket upgrades (spec §4.4).
package forward

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/weirdproxy/subproxy/internal/codec"
	"github.com/weirdproxy/subproxy/internal/config"
	"github.com/weirdproxy/subproxy/internal/errs"
	"github.com/weirdproxy/subproxy/internal/rewrite"
)

// Engine is the proxy pipeline handler. It holds the shared config, outbound
// client and HTML rewriter; all three are read-only after construction and
// safely shared across concurrently-handled requests (spec §5).
type Engine struct {
	cfg      config.Config
	client   *http.Client
	rewriter *rewrite.HTMLRewriter
	logger   zerolog.Logger
}

// New constructs the forwarding engine.
func New(cfg config.Config, client *http.Client, rewriter *rewrite.HTMLRewriter) *Engine {
	return &Engine{
		cfg:      cfg,
		client:   client,
		rewriter: rewriter,
		logger:   log.With().Str("component", "forward").Logger(),
	}
}

// encode binds the shared config into codec.EncodeURL so call sites don't
// have to thread cfg through every helper.
func (e *Engine) encode(rawURL string) string {
	return codec.EncodeURL(e.cfg.Algorithm, e.cfg.PublicHost, rawURL)
}

// ServeHTTP implements spec §4.3 step 1 onward, dispatching to the
// WebSocket bridge when the request carries an upgrade.
func (e *Engine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	event := e.logger.With().
		Str("method", r.Method).
		Str("host", r.Host).
		Str("path", r.URL.Path).
		Logger()

	origin, err := codec.ProxiedOrigin(e.cfg.Algorithm, e.cfg.PublicHost, r.Host)
	if err != nil {
		event.Warn().Err(err).Msg("failed to decode proxied origin")
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if isWebsocketUpgrade(r) {
		e.bridgeWebsocket(w, r, origin, event)
		return
	}

	e.forwardHTTP(w, r, origin, event)
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// forwardHTTP implements spec §4.3 steps 2-6.
func (e *Engine) forwardHTTP(w http.ResponseWriter, r *http.Request, origin codec.Origin, event zerolog.Logger) {
	start := time.Now()

	body, err := readLimitedBody(r.Body, e.cfg.MaxBodyBytes)
	if err != nil {
		if errors.Is(err, errBodyTooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		writeJSONError(w, http.StatusInternalServerError, errs.Errorf(errs.KindUpstreamFailure, "read request body: %w", err).Error())
		return
	}

	targetURL := origin.String() + r.URL.RequestURI()

	upstreamReq, err := http.NewRequestWithContext(r.Context(), r.Method, targetURL, newBodyReader(body))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, errs.Errorf(errs.KindUpstreamFailure, "build upstream request: %w", err).Error())
		return
	}
	upstreamReq.Header = buildUpstreamHeaders(r.Header, origin.Host)
	upstreamReq.Host = origin.Host

	resp, err := e.client.Do(upstreamReq)
	if err != nil {
		event.Error().Err(err).Msg("upstream request failed")
		writeJSONError(w, http.StatusInternalServerError, errs.Errorf(errs.KindUpstreamFailure, "contact upstream: %w", err).Error())
		return
	}
	defer resp.Body.Close()

	if err := e.writeResponse(w, resp, event); err != nil {
		event.Error().Err(err).Msg("failed to build downstream response")
		writePlainError(w, http.StatusInternalServerError, "Error building response")
		return
	}

	event.Info().Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("request proxied")
}

// writeResponse implements spec §4.3 steps 4-5: copy status, copy headers
// (stripping/rewriting), and either rewrite an HTML body or stream through.
func (e *Engine) writeResponse(w http.ResponseWriter, resp *http.Response, event zerolog.Logger) error {
	isHTML := strings.Contains(resp.Header.Get("Content-Type"), "text/html")

	if !isHTML {
		header := w.Header()
		copyResponseHeaders(header, resp.Header, e.encode)
		w.WriteHeader(resp.StatusCode)
		_, err := io.Copy(w, resp.Body)
		return err
	}

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Errorf(errs.KindResponseBuildError, "read html body: %w", err)
	}

	header := w.Header()
	copyResponseHeaders(header, resp.Header, e.encode)
	// The body below is always the fully decoded, rewritten form; framing
	// is recomputed by net/http, not copied from upstream (spec §4.3 step 5).
	header.Del("Content-Encoding")
	header.Del("Transfer-Encoding")
	header.Del("Content-Length")

	rewritten, err := e.rewriter.Rewrite(bytes.NewReader(rawBody))
	if err != nil {
		event.Warn().Err(err).Msg("html rewrite failed; substituting placeholder body")
		w.WriteHeader(resp.StatusCode)
		_, werr := io.WriteString(w, rewriteErrorPage)
		return werr
	}

	w.WriteHeader(resp.StatusCode)
	_, err = w.Write(rewritten)
	return err
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writePlainError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, message)
}

