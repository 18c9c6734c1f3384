// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package rewrite

// patchScript is the implementation-defined client-side JavaScript blob
// injected verbatim as the first child of <head> (spec §6 "Patch script").
// Its exact contents are out of scope for the contract; what matters is the
// delivery: one <script type="text/javascript"> tag, first child of <head>.
// This one wraps history.pushState/replaceState and window.fetch in
// functions that pass their arguments through unchanged; it does not
// rewrite any URL.
const patchScript = `(function() {
  var origPushState = history.pushState;
  var origReplaceState = history.replaceState;
  function patch(fn) {
    return function(state, title, url) {
      return fn.call(history, state, title, url);
    };
  }
  history.pushState = patch(origPushState);
  history.replaceState = patch(origReplaceState);

  var origFetch = window.fetch;
  if (origFetch) {
    window.fetch = function(input, init) {
      return origFetch.call(window, input, init);
    };
  }
})();`
