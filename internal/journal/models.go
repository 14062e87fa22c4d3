package journal

import (
	"context"
	"time"
)

// Kind identifies what a journal record describes.
type Kind string

const (
	KindCreated     Kind = "created"
	KindModified    Kind = "modified"
	KindMoved       Kind = "moved"
	KindDeleted     Kind = "deleted"
	KindRetry       Kind = "retry"
	KindBusyRetry   Kind = "busy_retry"
	KindOrganized   Kind = "organized"
	KindAIRouted    Kind = "ai_routed"
	KindSummary     Kind = "summary"
	KindSummaryErr  Kind = "summary_error"
	KindActionError Kind = "action_error"
	KindGivingUp    Kind = "giving_up"
)

// TriggersOrganization reports whether an event of this kind should run the
// organization pipeline. Modified and deleted events are journaled for the
// causal trail but never act.
func (k Kind) TriggersOrganization() bool {
	switch k {
	case KindCreated, KindMoved, KindRetry:
		return true
	default:
		return false
	}
}

// Record is one append-only audit entry.
type Record struct {
	ID        string
	Timestamp time.Time
	Kind      Kind
	Path      string
	// Folder carries the chosen destination for organized/ai_routed records.
	Folder string
	// Detail carries error text, summaries, or retry bookkeeping.
	Detail string
}

// Sink accepts audit records. Implementations must be safe for concurrent use
// and must never interleave partial writes.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

// MultiSink fans records out to every attached sink. The first error is
// returned but later sinks still receive the record.
type MultiSink []Sink

func (m MultiSink) Append(ctx context.Context, rec Record) error {
	var firstErr error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Append(ctx, rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
