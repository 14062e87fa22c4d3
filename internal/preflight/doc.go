// Package preflight provides readiness checks for the paths and services
// the organizer depends on.
//
// These checks run in two contexts:
//   - The daemon runs RunAll once before watching; a failed check aborts
//     startup instead of silently journaling errors for every file.
//   - The CLI "sift status" command uses the same results to display health.
//
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
