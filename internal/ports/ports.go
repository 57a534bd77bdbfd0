package ports

import (
	"context"
	"time"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
)

// QueueStore is the durable record of discovered bill URLs and their
// processing state.
type QueueStore interface {
	PendingURLs(ctx context.Context, chamber domain.Chamber, limit int) ([]domain.QueuedURL, error)
	MarkProcessed(ctx context.Context, urlID int64) error
	SetNote(ctx context.Context, urlID int64, note string) error
	LinkStory(ctx context.Context, urlID int64, storyID int64) error
	MaxBillNumber(ctx context.Context, chamber domain.Chamber) (int, error)
	InsertPending(ctx context.Context, chamber domain.Chamber, numbers []int) error
}

// StoryStore persists generated press releases and their state tags.
type StoryStore interface {
	FilenameExists(ctx context.Context, filename string) (bool, error)
	// InsertStory performs a conditional insert on the filename key and
	// reports inserted=false when the filename already exists.
	InsertStory(ctx context.Context, story domain.Story, tagIDs []int) (storyID int64, inserted bool, err error)
}

// SponsorResult distinguishes the three sponsor-lookup outcomes the
// pipeline must handle differently.
type SponsorResult struct {
	Line        string // "Jane Doe, D-NY," or empty when unknown
	LastName    string
	RateLimited bool // upstream 429: halt the entire run
}

// BillSource is the legislative data API.
type BillSource interface {
	// TextAndSummary returns bill text, official summary and the summary
	// publish date; each may independently be empty when unavailable.
	TextAndSummary(ctx context.Context, billNumber string, chamber domain.Chamber) (text, summary, summaryDate string, err error)
	PrimarySponsor(ctx context.Context, chamber domain.Chamber, billNumber string) (SponsorResult, error)
	LatestBillNumber(ctx context.Context, chamber domain.Chamber) (int, bool)
	CosponsorSummary(ctx context.Context, chamber domain.Chamber, billNumber, introDate string) (string, error)
}

type rateLimitError struct{}

func (rateLimitError) Error() string { return "completion rate limited" }

// ErrCompletionRateLimited is returned by Completer implementations when
// the provider rejects the call with HTTP 429.
var ErrCompletionRateLimited error = rateLimitError{}

// Completer performs one prompt -> one text completion, no streaming.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Notifier delivers the plain-text run summary report.
type Notifier interface {
	SendRunSummary(ctx context.Context, subject, body string) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
