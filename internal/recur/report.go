package recur

import "fmt"

// Report summarizes one pass.
type Report struct {
	// Fetched is how many completed tasks the gateway returned.
	Fetched int `json:"fetched"`
	// SkippedProcessed counts tasks already recorded in the store.
	SkippedProcessed int `json:"skipped_processed"`
	// SkippedFiltered counts tasks that failed the eligibility filter.
	SkippedFiltered int `json:"skipped_filtered"`
	// Duplicated counts confirmed creations (or would-be creations in dry
	// run mode).
	Duplicated int `json:"duplicated"`
	// Failed counts candidates whose creation failed; they remain
	// unrecorded and are retried on the next pass.
	Failed int `json:"failed"`
}

func (r Report) String() string {
	return fmt.Sprintf(
		"fetched %d, skipped %d processed / %d filtered, duplicated %d, failed %d",
		r.Fetched, r.SkippedProcessed, r.SkippedFiltered, r.Duplicated, r.Failed,
	)
}
