// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package controlapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/weirdproxy/subproxy/internal/codec"
	"github.com/weirdproxy/subproxy/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		Algorithm:  codec.Algorithm{Alphabet: codec.Z},
		Host:       "0.0.0.0:3069",
		PublicHost: "px.test",
	}
}

func TestIndexHandler(t *testing.T) {
	handler := New(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "0.0.0.0:3069") {
		t.Errorf("expected index body to mention configured host, got: %s", rec.Body.String())
	}
}

func TestEncodeEndpoint(t *testing.T) {
	handler := New(testConfig())

	body, _ := json.Marshal(encodeRequest{URL: "https://example.com/a"})
	req := httptest.NewRequest(http.MethodPost, "/encode", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp encodeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	want := codec.EncodeURL(codec.Algorithm{Alphabet: codec.Z}, "px.test", "https://example.com/a")
	if resp.EncodedURL != want {
		t.Errorf("encoded_url = %q, want %q", resp.EncodedURL, want)
	}
}

func TestEncodeEndpointRejectsInvalidJSON(t *testing.T) {
	handler := New(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/encode", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCORSHeadersPresent(t *testing.T) {
	handler := New(testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/encode", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
