// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package rewrite

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/weirdproxy/subproxy/internal/errs"
)

// rewrittenAttrs are the element attributes spec §4.2 names for rewriting,
// applied in document order to every element that carries them.
var rewrittenAttrs = map[string]struct{}{
	"href":   {},
	"src":    {},
	"poster": {},
}

// HTMLRewriter streams an HTML byte sequence, rewriting href/src/poster
// attributes through encode and injecting the patch script as the first
// child of <head>. It is constructed once per process and holds no other
// state, so a single instance is safely shared across every request (spec
// §3 "Lifecycle... Concurrency: read-only after construction").
type HTMLRewriter struct {
	encode func(string) string
}

// New constructs an HTMLRewriter. encode is typically codec.EncodeURL bound
// to the shared config's algorithm and public host.
func New(encode func(string) string) *HTMLRewriter {
	return &HTMLRewriter{encode: encode}
}

// Rewrite implements Rewriter. It uses golang.org/x/net/html's tokenizer to
// walk the document token by token (the same approach
// other_examples/8a93971b_evanj-kubewebproxy takes for its link rewriter),
// emitting each token's re-serialised form into a growing buffer that
// becomes the returned body once the stream ends.
//
// Handlers never fail on a malformed attribute value: encode is a total
// function that returns the original value unchanged when it cannot parse
// it, so the worst case is an unrewritten link. The tokenizer accepts
// malformed markup without error; the only failure mode here is an error
// reading r, which the tokenizer reports via Err() and which this method
// surfaces to the caller as a RewriteError so the caller can substitute the
// placeholder error page (spec §4.2 "Failure").
func (h *HTMLRewriter) Rewrite(r io.Reader) ([]byte, error) {
	tokenizer := html.NewTokenizer(r)
	var out bytes.Buffer
	headInjected := false

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			if err := tokenizer.Err(); err != io.EOF {
				return nil, errs.New(errs.KindRewriteError, err)
			}
			break
		}

		tok := tokenizer.Token()

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			h.rewriteAttrs(&tok)
		}

		if _, err := out.WriteString(tok.String()); err != nil {
			return nil, err
		}

		if !headInjected && tt == html.StartTagToken && tok.DataAtom == atom.Head {
			out.WriteString(`<script type="text/javascript">`)
			out.WriteString(patchScript)
			out.WriteString(`</script>`)
			headInjected = true
		}
	}

	return out.Bytes(), nil
}

func (h *HTMLRewriter) rewriteAttrs(tok *html.Token) {
	for i, attr := range tok.Attr {
		if _, ok := rewrittenAttrs[attr.Key]; ok {
			tok.Attr[i].Val = h.encode(attr.Val)
		}
	}
}
