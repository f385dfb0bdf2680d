package domain

import "time"

// SweepMode identifies which ingestion mode produced a run.
type SweepMode string

// Sweep modes.
const (
	// SweepBulk ingests up to the per-community cap from every active
	// community.
	SweepBulk SweepMode = "bulk"

	// SweepTrickle ingests at most one new post per community.
	SweepTrickle SweepMode = "trickle"

	// SweepAuthentic ingests a requested count into one community with
	// the authenticity gate enabled.
	SweepAuthentic SweepMode = "authentic"
)

// CommunityResult is the per-community outcome of a sweep.
type CommunityResult struct {
	// CommunityID identifies the community.
	CommunityID string

	// CommunityName is the community's display name.
	CommunityName string

	// Fetched counts items returned by upstream fetches.
	Fetched int

	// Persisted counts records created.
	Persisted int

	// SkippedExisting counts items dropped as duplicates.
	SkippedExisting int

	// FilteredQuality counts items dropped by the quality gate.
	FilteredQuality int

	// SourceErrors lists per-source-config failures. A non-empty list
	// does not mean the community failed: other configs may have
	// succeeded and the watermark still advances.
	SourceErrors []string

	// Err is the fatal error that aborted this community, if any.
	Err string
}

// Failed reports whether the community was aborted before completion.
func (r *CommunityResult) Failed() bool {
	return r.Err != ""
}

// RunResult is the structured outcome of an ingestion sweep. Sweeps
// always produce one, even when every community fails.
type RunResult struct {
	// Mode is the sweep mode that produced this run.
	Mode SweepMode

	// StartedAt is when the sweep began.
	StartedAt time.Time

	// FinishedAt is when the sweep completed.
	FinishedAt time.Time

	// Communities holds per-community outcomes in processing order.
	Communities []CommunityResult

	// Errors aggregates community-level and source-level failure
	// messages for quick inspection.
	Errors []string
}

// TotalFetched sums fetched counts across communities.
func (r *RunResult) TotalFetched() int {
	n := 0
	for _, c := range r.Communities {
		n += c.Fetched
	}
	return n
}

// TotalPersisted sums persisted counts across communities.
func (r *RunResult) TotalPersisted() int {
	n := 0
	for _, c := range r.Communities {
		n += c.Persisted
	}
	return n
}

// TotalSkipped sums duplicate-skip counts across communities.
func (r *RunResult) TotalSkipped() int {
	n := 0
	for _, c := range r.Communities {
		n += c.SkippedExisting
	}
	return n
}

// FailedCommunities counts communities that were aborted.
func (r *RunResult) FailedCommunities() int {
	n := 0
	for _, c := range r.Communities {
		if c.Failed() {
			n++
		}
	}
	return n
}

// CleanupOptions controls a maintenance pass over published content.
type CleanupOptions struct {
	// MaxAgeDays hides records older than this many days when they are
	// also below MinQuality.
	MaxAgeDays int

	// MinQuality is the quality score floor for the age-based rule.
	MinQuality float64

	// MaxPerCommunity caps each community to its most recent N active
	// records; older excess records are hidden.
	MaxPerCommunity int
}

// DefaultCleanupOptions returns the standard maintenance policy.
func DefaultCleanupOptions() CleanupOptions {
	return CleanupOptions{
		MaxAgeDays:      30,
		MinQuality:      0.4,
		MaxPerCommunity: 100,
	}
}

// CleanupResult reports what a maintenance pass hid.
type CleanupResult struct {
	// HiddenLowQuality counts records hidden by the age+quality rule.
	HiddenLowQuality int

	// HiddenExcess counts records hidden by the per-community cap.
	HiddenExcess int
}
