// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package forward

import (
	"bytes"
	"errors"
	"io"
)

// errBodyTooLarge is returned by readLimitedBody when the inbound request
// body exceeds the configured ceiling.
var errBodyTooLarge = errors.New("request body exceeds configured limit")

// readLimitedBody buffers r fully in memory, as spec §4.3 step 2 requires
// ("Body: buffered in full, then sent as a single upstream body"), up to
// limit bytes. Unlike the source, which buffers unboundedly (spec §5, §9
// open question 2: "a production implementation MUST impose a limit and
// return 413 on overflow"), this repo enforces limit and reports overflow
// distinctly so the caller can answer with 413 instead of 500.
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}

	limited := io.LimitReader(r, limit+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, errBodyTooLarge
	}
	return body, nil
}

// newBodyReader wraps a buffered body for use as an http.Request body.
func newBodyReader(body []byte) io.Reader {
	if len(body) == 0 {
		return nil
	}
	return bytes.NewReader(body)
}
