// Package router decides which destination folder a file belongs in.
//
// Files with the configured dynamic extension are routed by content via the
// injected classifier; everything else routes through the static extension
// map. Dynamic routing never surfaces an unrecognized or empty destination:
// classifier failures and off-list labels resolve to the fallback folder.
package router
