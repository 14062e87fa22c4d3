// Package dispatch runs the event intake and safe-action pipeline.
//
// Raw watch events pass an eligibility filter and a per-path debounce gate,
// are journaled, and (for kinds that organize) run through readiness
// probing, routing, and the collision-safe mover on a per-event worker. Busy
// files re-enter the pipeline later through the retry scheduler, bounded by
// an attempt cap. No single event may crash the session: each worker has a
// recover boundary that degrades faults to action_error records.
package dispatch
