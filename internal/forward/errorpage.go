// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package forward

// rewriteErrorPage is substituted for the response body when the HTML
// rewriter fails mid-stream (spec §4.2 "Failure"). Status and headers
// received from upstream are preserved; only the body changes.
const rewriteErrorPage = `<html><body><h1>Error rewriting HTML</h1></body></html>`
