// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package errs defines the proxy's error kinds and the HTTP status each one
// maps to when surfaced to a client.
package errs

import (
	"fmt"
	"net/http"
)

// Kind identifies one of the error categories the proxy can raise while
// handling a request.
type Kind int

const (
	// KindInvalidHost means the Host header is not a subdomain of the
	// configured public host.
	KindInvalidHost Kind = iota
	// KindDecodeError means the subdomain label failed to base32-decode.
	KindDecodeError
	// KindInvalidOrigin means the decoded bytes are not a valid
	// scheme://host[:port] origin.
	KindInvalidOrigin
	// KindUpstreamFailure means a transport-layer error occurred contacting
	// the upstream.
	KindUpstreamFailure
	// KindRewriteError means the HTML rewriter failed mid-stream.
	KindRewriteError
	// KindResponseBuildError means assembling the downstream response failed.
	KindResponseBuildError
)

func (k Kind) String() string {
	switch k {
	case KindInvalidHost:
		return "InvalidHost"
	case KindDecodeError:
		return "DecodeError"
	case KindInvalidOrigin:
		return "InvalidOrigin"
	case KindUpstreamFailure:
		return "UpstreamFailure"
	case KindRewriteError:
		return "RewriteError"
	case KindResponseBuildError:
		return "ResponseBuildError"
	default:
		return "Unknown"
	}
}

// Error is a typed error carrying the HTTP status the propagation policy in
// spec §7 assigns to it. All kinds surface as 500 today; Status is kept
// explicit rather than hard-coded at the call site so a future kind can
// diverge without touching every handler.
type Error struct {
	Kind Kind
	Err  error
}

// New wraps err under the given kind.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Errorf builds an Error from a format string, mirroring fmt.Errorf.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code that should be returned to the
// client for this error. Every kind maps to 500 per spec §7; the proxy
// never falls back to a different upstream or retries.
func (e *Error) Status() int {
	return http.StatusInternalServerError
}
