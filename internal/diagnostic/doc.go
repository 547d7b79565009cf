// Package diagnostic provides the structured diagnostics reported by the
// union structural validator.
//
// Key capabilities:
//   - A fixed rule catalog (ID, severity, message template, gating flag)
//   - Ordered diagnostic lists with source positions
//   - Blocking (generation-gating) subset selection
//   - Nearest-match suggestions attached to a diagnostic
package diagnostic
