// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package router implements the hostname router (spec §4.5): it dispatches
// each inbound request to either the control API or the proxy pipeline
// based on the Host header.
package router

import (
	"net/http"
	"strings"
)

// Router compares the inbound Host header against "api." + publicHost and
// dispatches accordingly. The match is host-only (a ":port" suffix on the
// inbound Host is stripped before comparing): spec §9 open question 4 notes
// the source does an exact string match that breaks when a port is present,
// and flags a host-only comparison as the robust fix, which is what this
// repo implements.
type Router struct {
	apiHost string
	api     http.Handler
	proxy   http.Handler
}

// New builds a Router that dispatches to api when the request's Host
// matches "api." + publicHost, and to proxy otherwise.
func New(publicHost string, api, proxy http.Handler) *Router {
	return &Router{
		apiHost: "api." + publicHost,
		api:     api,
		proxy:   proxy,
	}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	host := r.Host
	if idx := strings.LastIndex(host, ":"); idx >= 0 {
		host = host[:idx]
	}

	if strings.EqualFold(host, rt.apiHost) {
		rt.api.ServeHTTP(w, r)
		return
	}

	rt.proxy.ServeHTTP(w, r)
}
