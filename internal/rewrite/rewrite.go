// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package rewrite implements the streaming HTML rewriter (spec §4.2): it
// rewrites href/src/poster attributes through the URL codec and injects the
// client-side patch script as the first child of <head>.
package rewrite

import "io"

// Rewriter is the seam the HTML rewriter implements. It mirrors the
// original implementation's generic rewriter trait (the reference `Rewriter`
// abstraction kept so a future non-HTML rewriter could share the call site),
// even though HTML is the only implementation the spec requires.
type Rewriter interface {
	Rewrite(r io.Reader) ([]byte, error)
}
