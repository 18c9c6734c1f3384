// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package rewrite

import (
	"strings"
	"testing"
)

func upperEncode(s string) string {
	return "ENCODED(" + s + ")"
}

func TestRewriteInjectsScriptAsFirstHeadChild(t *testing.T) {
	r := New(upperEncode)
	in := `<html><head><title>hi</title></head><body></body></html>`

	out, err := r.Rewrite(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	got := string(out)
	headIdx := strings.Index(got, "<head>")
	scriptIdx := strings.Index(got, `<script type="text/javascript">`)
	titleIdx := strings.Index(got, "<title>")

	if headIdx == -1 || scriptIdx == -1 || titleIdx == -1 {
		t.Fatalf("missing expected tags in output: %s", got)
	}
	if !(headIdx < scriptIdx && scriptIdx < titleIdx) {
		t.Fatalf("expected script to be the first child of head, got: %s", got)
	}
	if strings.Count(got, "<script") != 1 {
		t.Fatalf("expected exactly one injected script tag, got: %s", got)
	}
}

func TestRewriteAttributes(t *testing.T) {
	r := New(upperEncode)
	in := `<html><head></head><body>` +
		`<a href="https://bar.test/x">link</a>` +
		`<img src="https://bar.test/img.png">` +
		`<video poster="https://bar.test/poster.png"></video>` +
		`</body></html>`

	out, err := r.Rewrite(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	got := string(out)
	for _, want := range []string{
		`href="ENCODED(https://bar.test/x)"`,
		`src="ENCODED(https://bar.test/img.png)"`,
		`poster="ENCODED(https://bar.test/poster.png)"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got: %s", want, got)
		}
	}
}

func TestRewriteNeverFailsOnMalformedAttribute(t *testing.T) {
	failingEncode := func(s string) string { return s } // total function per spec §4.1
	r := New(failingEncode)

	in := `<html><head></head><body><a href="%%%not a url%%%">x</a></body></html>`
	out, err := r.Rewrite(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Rewrite should never fail on malformed attribute values: %v", err)
	}
	if !strings.Contains(string(out), `href="%%%not a url%%%"`) {
		t.Fatalf("expected malformed href preserved unchanged, got: %s", out)
	}
}

// idempotentEncode mimics codec.EncodeURL against a fixed public host: a URL
// already pointing at that host is left unchanged, matching the codec's
// own idempotence under re-encoding an already-proxied link (spec §8
// invariant 4).
func idempotentEncode(publicHost string) func(string) string {
	return func(s string) string {
		if strings.Contains(s, publicHost) {
			return s
		}
		return "https://encoded." + publicHost + "/x"
	}
}

func TestRewriteIdempotentOnAlreadyProxiedLinks(t *testing.T) {
	encode := idempotentEncode("px.test")
	r := New(encode)

	in := `<html><head></head><body><a href="https://real.example.com/x">l</a></body></html>`

	once, err := r.Rewrite(strings.NewReader(in))
	if err != nil {
		t.Fatalf("first rewrite: %v", err)
	}

	twice, err := r.Rewrite(strings.NewReader(string(once)))
	if err != nil {
		t.Fatalf("second rewrite: %v", err)
	}

	// Running the rewriter on its own output a second time must not mutate
	// an already-proxied href further, though the script is injected again
	// since each Rewrite call processes a fresh, independent document.
	if !strings.Contains(string(twice), `href="https://encoded.px.test/x"`) {
		t.Fatalf("expected idempotent href, got: %s", twice)
	}
}
