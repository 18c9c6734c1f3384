// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package codec implements the URL codec: encoding an upstream origin into a
// DNS-label-safe subdomain of a configured public host, and decoding that
// subdomain back into the origin it names. See spec §4.1.
package codec

import (
	"net/url"
	"strings"

	"github.com/weirdproxy/subproxy/internal/errs"
)

// EncodeURL implements spec §4.1 "Encode". It is a total function: malformed
// or non-absolute input is returned unchanged rather than raising an error,
// so a best-effort rewrite never corrupts an unparseable attribute value.
//
// The query string and fragment of rawURL are dropped; only scheme, host,
// optional port and path survive into the encoded form. This mirrors the
// source behaviour (spec §9 open question 1) and is covered by an explicit
// test rather than silently "fixed".
//
// A URL whose host is already a subdomain of publicHost is returned
// unchanged, so re-encoding an already-proxied link is a no-op.
func EncodeURL(algo Algorithm, publicHost, rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		return rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.Scheme == "" || u.Host == "" {
		return rawURL
	}
	if strings.HasSuffix(strings.ToLower(u.Hostname()), "."+strings.ToLower(publicHost)) {
		return rawURL
	}

	origin := u.Scheme + "://" + u.Hostname()
	if port := u.Port(); port != "" {
		origin += ":" + port
	}

	payload := algo.mask([]byte(origin))
	encoded := algo.Alphabet.Encoding().EncodeToString(payload)

	return "https://" + encoded + "." + publicHost + u.Path
}

// ProxiedOrigin implements spec §4.1 "Decode". hostHeader is the raw Host
// header of the inbound request, which may carry a ":port" suffix that is
// stripped before the public-host suffix is matched.
func ProxiedOrigin(algo Algorithm, publicHost, hostHeader string) (Origin, error) {
	host := hostHeader
	if idx := strings.LastIndex(host, ":"); idx >= 0 {
		host = host[:idx]
	}

	label, ok := strings.CutSuffix(host, publicHost)
	if !ok {
		return Origin{}, errs.Errorf(errs.KindInvalidHost, "host %q is not a subdomain of %q", hostHeader, publicHost)
	}
	label = strings.TrimSuffix(label, ".")
	if label == "" {
		return Origin{}, errs.Errorf(errs.KindInvalidHost, "host %q has no encoded subdomain", hostHeader)
	}

	decoded, err := algo.Alphabet.Encoding().DecodeString(label)
	if err != nil {
		return Origin{}, errs.Errorf(errs.KindDecodeError, "base32 decode of %q: %w", label, err)
	}

	decoded = algo.mask(decoded)

	return ParseOrigin(string(decoded))
}
