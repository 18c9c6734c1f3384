// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package forward

import (
	"net/http"
	"strings"

	"github.com/weirdproxy/subproxy/internal/httpclient"
)

// strippedRequestHeaders are removed from the inbound request before it is
// forwarded upstream (spec §6 "Stripped/rewritten request headers"), besides
// any header whose name begins with "cf-" which is matched by prefix below.
var strippedRequestHeaders = []string{"Referer", "X-Forwarded-For", "Cdn-Loop"}

// strippedResponseHeaders is the exact set spec §6 enumerates: security and
// isolation headers that must never reach the client, since they'd pin the
// browser's trust decisions to the upstream origin instead of the proxy's.
var strippedResponseHeaders = []string{
	"Cross-Origin-Embedder-Policy",
	"Cross-Origin-Opener-Policy",
	"Cross-Origin-Resource-Policy",
	"Content-Security-Policy",
	"Content-Security-Policy-Report-Only",
	"Expect-Ct",
	"Feature-Policy",
	"Origin-Isolation",
	"Strict-Transport-Security",
	"Upgrade-Insecure-Requests",
	"X-Content-Type-Options",
	"X-Download-Options",
	"X-Frame-Options",
	"X-Permitted-Cross-Domain-Policies",
	"X-Powered-By",
	"X-Xss-Protection",
}

// buildUpstreamHeaders copies src into a fresh http.Header, replacing Host
// and Accept-Encoding and stripping the headers spec §4.3 step 2 names.
func buildUpstreamHeaders(src http.Header, upstreamHost string) http.Header {
	dst := src.Clone()

	for _, name := range strippedRequestHeaders {
		dst.Del(name)
	}
	for name := range dst {
		if strings.HasPrefix(strings.ToLower(name), "cf-") {
			dst.Del(name)
		}
	}

	dst.Set("Host", upstreamHost)
	dst.Set("Accept-Encoding", httpclient.AcceptEncoding)

	return dst
}

// copyResponseHeaders copies every header from src to dst except the
// stripped set (spec §6), rewriting Location through encode on the way.
func copyResponseHeaders(dst, src http.Header, encode func(string) string) {
	stripped := make(map[string]struct{}, len(strippedResponseHeaders))
	for _, name := range strippedResponseHeaders {
		stripped[http.CanonicalHeaderKey(name)] = struct{}{}
	}

	for name, values := range src {
		if _, ok := stripped[http.CanonicalHeaderKey(name)]; ok {
			continue
		}
		for _, v := range values {
			if http.CanonicalHeaderKey(name) == "Location" {
				v = encode(v)
			}
			dst.Add(name, v)
		}
	}
}
