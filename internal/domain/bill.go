package domain

import (
	"fmt"
	"strings"
	"time"
)

// Congress is the two-year legislative session the pipeline tracks.
const Congress = 119

// Chamber identifies which legislative body a bill belongs to.
type Chamber string

const (
	House  Chamber = "house"
	Senate Chamber = "senate"
)

// BillType returns the congress.gov bill-type code ("hr" or "s").
func (c Chamber) BillType() string {
	if c == Senate {
		return "s"
	}
	return "hr"
}

// Honorific returns the singular title used for members of the chamber.
func (c Chamber) Honorific() string {
	if c == Senate {
		return "Sen."
	}
	return "Rep."
}

// BillLabel returns the formatted bill designator, e.g. "S." or "H.R".
func (c Chamber) BillLabel() string {
	if c == Senate {
		return "S."
	}
	return "H.R"
}

// Title returns the chamber name with an uppercase first letter.
func (c Chamber) Title() string {
	if c == Senate {
		return "Senate"
	}
	return "House"
}

// BillURL builds the canonical congress.gov viewer URL for a bill number.
func (c Chamber) BillURL(number int) string {
	return fmt.Sprintf("https://www.congress.gov/bill/%dth-congress/%s-bill/%d", Congress, c, number)
}

// URLStatus enumerates queue lifecycle states.
type URLStatus string

const (
	StatusPending   URLStatus = "pending"
	StatusProcessed URLStatus = "processed"

	// StatusInvalid exists in the schema for permanent failures but no
	// pipeline path sets it; unprocessable bills stay pending and are
	// re-evaluated on the next run.
	StatusInvalid URLStatus = "invalid"
)

// QueuedURL is one discovered bill URL awaiting processing.
type QueuedURL struct {
	ID      int64
	URL     string
	Chamber Chamber
	Status  URLStatus
	Notes   string
	StoryID int64
}

// CanonicalURL trims surrounding whitespace and any trailing slashes.
// It is idempotent.
func CanonicalURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// Story is one generated press release keyed by its deterministic filename.
type Story struct {
	Filename    string
	Headline    string
	Body        string
	Uname       string
	Byline      string
	SourceID    int
	SponsorBlob string
	ContentDate time.Time
	SentAt      time.Time
}

// BillMetadata carries everything needed to generate one release. It lives
// only for the duration of processing a single URL.
type BillMetadata struct {
	URL         string
	Chamber     Chamber
	BillNumber  string
	Text        string
	Summary     string
	SummaryDate string
	SponsorBlob string
}
