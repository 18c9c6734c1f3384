// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package httpclient builds the single shared outbound http.Client the
// forwarding engine dispatches every upstream request through (spec §3
// "Outbound HTTP client"). Redirects are disabled so the proxy can surface
// 3xx responses itself and rewrite Location; gzip, br, deflate and zstd
// response bodies are transparently decoded so the HTML rewriter and the
// passthrough body path always see decoded bytes.
package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// AcceptEncoding is the value the forwarding engine sets on every upstream
// request (spec §4.3 step 2), advertising every encoding this client can
// transparently decode.
const AcceptEncoding = "gzip, br, deflate, zstd"

// New builds the shared client. timeout bounds the full request lifecycle
// (connect through body read), matching the teacher's *http.Client setup in
// pkg/proxy/proxy.go.
func New(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     false, // spec §1 Non-goals: no HTTP/2 upstream
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig:       &tls.Config{},
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: &decodingTransport{base: transport},
		// Redirects are not followed; 3xx responses are surfaced as-is so
		// Location can be rewritten by the forwarding engine (spec §4.3 step 3).
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
