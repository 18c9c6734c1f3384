// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package httpclient

import (
	"compress/flate"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// decodingTransport wraps a base http.RoundTripper and transparently
// decompresses response bodies whose Content-Encoding names a scheme this
// proxy advertises in its Accept-Encoding. Go's stdlib http.Transport only
// auto-decodes "gzip", and only when Accept-Encoding was left unset; since
// the forwarding engine always sets Accept-Encoding itself (spec §4.3 step
// 2), every encoding is handled here uniformly instead.
type decodingTransport struct {
	base http.RoundTripper
}

func (d *decodingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := d.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	if encoding == "" || encoding == "identity" {
		return resp, nil
	}

	var decoded io.Reader
	switch encoding {
	case "gzip":
		gz, gzErr := gzip.NewReader(resp.Body)
		if gzErr != nil {
			return resp, nil // not actually gzip-encoded; hand the raw body back
		}
		decoded = gz
	case "br":
		decoded = brotli.NewReader(resp.Body)
	case "deflate":
		decoded = flate.NewReader(resp.Body)
	case "zstd":
		zr, zErr := zstd.NewReader(resp.Body)
		if zErr != nil {
			return resp, nil
		}
		decoded = zr
	default:
		return resp, nil
	}

	resp.Body = &decodedBody{Reader: decoded, underlying: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return resp, nil
}

// decodedBody closes the underlying network body alongside the decoder.
type decodedBody struct {
	io.Reader
	underlying io.ReadCloser
}

func (d *decodedBody) Close() error {
	return d.underlying.Close()
}
