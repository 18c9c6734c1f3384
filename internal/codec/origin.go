// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package codec

import (
	"strconv"
	"strings"

	"github.com/weirdproxy/subproxy/internal/errs"
)

// Scheme is the transport scheme of an Origin.
type Scheme int

const (
	// Http is a plaintext upstream.
	Http Scheme = iota
	// Https is a TLS upstream.
	Https
)

// String renders the scheme as its wire form.
func (s Scheme) String() string {
	if s == Https {
		return "https"
	}
	return "http"
}

// Origin identifies an upstream server. Invariant: Host contains neither '/'
// nor ':'. Port defaults to 80 for Http and 443 for Https when the source
// string omitted it.
type Origin struct {
	Scheme Scheme
	Host   string
	Port   uint16
}

// String renders the origin back to "scheme://host:port".
func (o Origin) String() string {
	return o.Scheme.String() + "://" + o.Host + ":" + strconv.Itoa(int(o.Port))
}

// ParseOrigin splits s once on "://" and once more on ':', validating the
// shape spec §4.1 requires: scheme must be http or https, host must be
// non-empty and free of '/' and ':'. Any violation yields InvalidOrigin.
func ParseOrigin(s string) (Origin, error) {
	if s == "" {
		return Origin{}, errs.Errorf(errs.KindInvalidOrigin, "empty origin")
	}

	schemeStr, rest, ok := strings.Cut(s, "://")
	if !ok {
		return Origin{}, errs.Errorf(errs.KindInvalidOrigin, "missing scheme separator in %q", s)
	}

	var scheme Scheme
	switch schemeStr {
	case "http":
		scheme = Http
	case "https":
		scheme = Https
	default:
		return Origin{}, errs.Errorf(errs.KindInvalidOrigin, "unsupported scheme %q", schemeStr)
	}

	host, portStr, hasPort := strings.Cut(rest, ":")
	if host == "" {
		return Origin{}, errs.Errorf(errs.KindInvalidOrigin, "empty host in %q", s)
	}
	if strings.ContainsAny(host, "/:") {
		return Origin{}, errs.Errorf(errs.KindInvalidOrigin, "host %q contains illegal characters", host)
	}

	var port uint16
	if hasPort {
		parsed, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return Origin{}, errs.Errorf(errs.KindInvalidOrigin, "invalid port %q: %w", portStr, err)
		}
		port = uint16(parsed)
	} else if scheme == Https {
		port = 443
	} else {
		port = 80
	}

	return Origin{Scheme: scheme, Host: host, Port: port}, nil
}
