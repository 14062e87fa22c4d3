// Package journal persists the append-only audit trail of pipeline decisions.
//
// Every admitted event and every significant transition (busy_retry,
// organized, action_error, giving_up) becomes one Record. The primary sink is
// a SQLite database in the log directory; a JSONL mirror can be attached for
// tail -f style inspection. Sinks serialize concurrent writers so records
// never interleave.
package journal
