// Package services defines the shared error taxonomy for pipeline stages.
//
// Stage code wraps failures with one of the exported sentinels so the
// dispatcher can distinguish a busy file (retry), a vanished file (terminal
// no-op), a classification failure (fallback folder), and a move failure
// (action_error record) without parsing message text.
package services
