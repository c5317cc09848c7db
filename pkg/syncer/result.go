// Package syncer implements the watermark-driven incremental
// synchronization pipelines: resolving the next unsynchronized unit,
// transforming or aggregating its data, upserting downstream, and
// durably recording progress.
package syncer

// Outcome classifies how a synchronization invocation ended.
type Outcome string

const (
	// OutcomeSynced means one unit was fully processed and its success
	// watermark written.
	OutcomeSynced Outcome = "synced"
	// OutcomeNoWork means nothing was pending; the invocation had no
	// side effects.
	OutcomeNoWork Outcome = "no_work"
)

// Result describes the outcome of one synchronization invocation.
type Result struct {
	Pipeline string  `json:"pipeline"`
	Outcome  Outcome `json:"outcome"`
	// Unit identifies the processed unit: the event date, or the
	// reservation anchor timestamp. Empty when no work was pending.
	Unit string `json:"unit,omitempty"`
	// Records is the number of records upserted downstream.
	Records int `json:"records"`
}
