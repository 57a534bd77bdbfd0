package domain

import "time"

// Outcome tags the result of a generation attempt, replacing the string
// sentinels ("NA", "STOP") the upstream data flow would otherwise need.
type Outcome int

const (
	// OutcomeUnknown is the zero value; a Release that was never filled in
	// must not read as a success.
	OutcomeUnknown Outcome = iota
	// OutcomeOK means filename, headline and body are all populated.
	OutcomeOK
	// OutcomeNotYetAvailable means the bill text carries no introduction
	// date marker yet; retry on a later run.
	OutcomeNotYetAvailable
	// OutcomeRateLimited means an upstream 429 was hit; the whole run
	// must stop consuming URLs immediately.
	OutcomeRateLimited
	// OutcomeMalformed means the model response was unusable (missing
	// headline split, unfilled template, unknown sponsor); retry later.
	OutcomeMalformed
)

// Release is the tagged output of the generator. StateTags maps detected
// two-letter state codes to their newsroom tag identifiers and is an
// explicit output rather than shared state.
type Release struct {
	Outcome   Outcome
	Filename  string
	Headline  string
	Body      string
	StateTags map[string]int
}

// RunSummary accumulates per-run tallies for the notification report.
type RunSummary struct {
	Chamber       Chamber
	PopulateFirst bool
	TestRun       bool
	Processed     int
	Skipped       int
	Deferred      int
	TotalURLs     int
	Stopped       bool
	StartTime     time.Time
	EndTime       time.Time
}
