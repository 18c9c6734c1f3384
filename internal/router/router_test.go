// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func handlerTagging(tag string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Handled-By", tag)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRouterDispatchesToAPIHost(t *testing.T) {
	rt := New("px.test", handlerTagging("api"), handlerTagging("proxy"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "api.px.test"
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Handled-By"); got != "api" {
		t.Errorf("handled by %q, want api", got)
	}
}

func TestRouterDispatchesToProxyForOtherHosts(t *testing.T) {
	rt := New("px.test", handlerTagging("api"), handlerTagging("proxy"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "abcd1234.px.test"
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Handled-By"); got != "proxy" {
		t.Errorf("handled by %q, want proxy", got)
	}
}

func TestRouterStripsInboundPortBeforeMatching(t *testing.T) {
	// spec §9 open question 4: a port suffix on the inbound Host must not
	// defeat the api-host match.
	rt := New("px.test", handlerTagging("api"), handlerTagging("proxy"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "api.px.test:8443"
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Handled-By"); got != "api" {
		t.Errorf("handled by %q, want api even with inbound port", got)
	}
}

func TestRouterMatchIsCaseInsensitive(t *testing.T) {
	rt := New("px.test", handlerTagging("api"), handlerTagging("proxy"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "API.PX.TEST"
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Handled-By"); got != "api" {
		t.Errorf("handled by %q, want api regardless of case", got)
	}
}

func TestRouterEmptyHostGoesToProxy(t *testing.T) {
	rt := New("px.test", handlerTagging("api"), handlerTagging("proxy"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = ""
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Handled-By"); got != "proxy" {
		t.Errorf("handled by %q, want proxy for empty host", got)
	}
}
