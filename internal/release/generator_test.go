package release

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/ports"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeSource struct {
	sponsor ports.SponsorResult
	err     error
}

func (f *fakeSource) PrimarySponsor(ctx context.Context, chamber domain.Chamber, billNumber string) (ports.SponsorResult, error) {
	return f.sponsor, f.err
}

func (f *fakeSource) TextAndSummary(ctx context.Context, billNumber string, chamber domain.Chamber) (string, string, string, error) {
	return "", "", "", nil
}

func (f *fakeSource) LatestBillNumber(ctx context.Context, chamber domain.Chamber) (int, bool) {
	return 0, false
}

func (f *fakeSource) CosponsorSummary(ctx context.Context, chamber domain.Chamber, billNumber, introDate string) (string, error) {
	return "", nil
}

func testMeta() domain.BillMetadata {
	return domain.BillMetadata{
		URL:         "https://www.congress.gov/bill/119th-congress/house-bill/1234/text",
		Chamber:     domain.House,
		BillNumber:  "1234",
		Text:        houseIntroText,
		Summary:     "A bill to do the thing.",
		SummaryDate: "2025-01-05",
	}
}

func newTestGenerator(completer ports.Completer, source ports.BillSource) *Generator {
	g := NewGenerator(completer, source, nil)
	g.now = func() time.Time {
		return time.Date(2025, time.March, 7, 9, 0, 0, 0, time.UTC)
	}
	return g
}

func TestGenerateRoundTrip(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{
		response: "Rep. Smiths Clean Water Act Analyzed by CRS\n" +
			"The Clean Water Act, introduced by Rep. John Smith, R-TX, on January 5, 2025, " +
			"has been analyzed by the Congressional Research Service. A colleague, D-NY, concurred.",
	}
	source := &fakeSource{sponsor: ports.SponsorResult{Line: "John Smith, R-TX,", LastName: "Smith"}}

	got := newTestGenerator(completer, source).Generate(context.Background(), testMeta())
	if got.Outcome != domain.OutcomeOK {
		t.Fatalf("expected OK outcome, got %v", got.Outcome)
	}
	if got.Filename != "$H billSumh-250105-hr1234" {
		t.Fatalf("unexpected filename: %q", got.Filename)
	}
	if got.Headline != "Rep. Smiths Clean Water Act Analyzed by CRS" {
		t.Fatalf("unexpected headline: %q", got.Headline)
	}
	if !strings.HasPrefix(got.Body, "WASHINGTON, March 7 -- ") {
		t.Fatalf("missing dateline prefix: %q", got.Body)
	}
	if !strings.Contains(got.Body, "(H.R 1234)") {
		t.Fatalf("missing bill-number parenthetical: %q", got.Body)
	}
	if len(got.StateTags) != 2 || got.StateTags["TX"] != 110 || got.StateTags["NY"] != 99 {
		t.Fatalf("unexpected state tags: %v", got.StateTags)
	}
}

func TestGenerateKeepsExistingParenthetical(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{
		response: "Rep. Smiths Act Analyzed by CRS\n" +
			"The Act (H.R 1234), introduced by Rep. John Smith, R-TX, on January 5, 2025, has been analyzed.",
	}
	source := &fakeSource{sponsor: ports.SponsorResult{Line: "John Smith, R-TX,", LastName: "Smith"}}

	got := newTestGenerator(completer, source).Generate(context.Background(), testMeta())
	if got.Outcome != domain.OutcomeOK {
		t.Fatalf("expected OK outcome, got %v", got.Outcome)
	}
	if strings.Count(got.Body, "(H.R 1234)") != 1 {
		t.Fatalf("parenthetical duplicated: %q", got.Body)
	}
}

func TestGenerateNotYetAvailable(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{response: "irrelevant"}
	source := &fakeSource{sponsor: ports.SponsorResult{Line: "John Smith, R-TX,", LastName: "Smith"}}

	meta := testMeta()
	meta.Text = "no introduction block yet"

	got := newTestGenerator(completer, source).Generate(context.Background(), meta)
	if got.Outcome != domain.OutcomeNotYetAvailable {
		t.Fatalf("expected not-yet-available, got %v", got.Outcome)
	}
	if completer.calls != 0 {
		t.Fatalf("completion should not be called without a filename")
	}
}

func TestGenerateSponsorRateLimited(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{response: "irrelevant"}
	source := &fakeSource{sponsor: ports.SponsorResult{RateLimited: true}}

	got := newTestGenerator(completer, source).Generate(context.Background(), testMeta())
	if got.Outcome != domain.OutcomeRateLimited {
		t.Fatalf("expected rate-limited, got %v", got.Outcome)
	}
	if completer.calls != 0 {
		t.Fatalf("completion should not be called after a sponsor 429")
	}
}

func TestGenerateSponsorUnknown(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{response: "irrelevant"}
	source := &fakeSource{sponsor: ports.SponsorResult{}}

	got := newTestGenerator(completer, source).Generate(context.Background(), testMeta())
	if got.Outcome != domain.OutcomeMalformed {
		t.Fatalf("expected malformed for unknown sponsor, got %v", got.Outcome)
	}
}

func TestGenerateCompletionRateLimited(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{err: ports.ErrCompletionRateLimited}
	source := &fakeSource{sponsor: ports.SponsorResult{Line: "John Smith, R-TX,", LastName: "Smith"}}

	got := newTestGenerator(completer, source).Generate(context.Background(), testMeta())
	if got.Outcome != domain.OutcomeRateLimited {
		t.Fatalf("expected rate-limited, got %v", got.Outcome)
	}
}

func TestGenerateCompletionError(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{err: fmt.Errorf("boom")}
	source := &fakeSource{sponsor: ports.SponsorResult{Line: "John Smith, R-TX,", LastName: "Smith"}}

	got := newTestGenerator(completer, source).Generate(context.Background(), testMeta())
	if got.Outcome != domain.OutcomeMalformed {
		t.Fatalf("expected malformed on completion error, got %v", got.Outcome)
	}
}

func TestGenerateMissingHeadlineSplit(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{response: "one single line without a body"}
	source := &fakeSource{sponsor: ports.SponsorResult{Line: "John Smith, R-TX,", LastName: "Smith"}}

	got := newTestGenerator(completer, source).Generate(context.Background(), testMeta())
	if got.Outcome != domain.OutcomeMalformed {
		t.Fatalf("expected malformed without a newline split, got %v", got.Outcome)
	}
}

func TestGenerateUnfilledPlaceholder(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{
		response: "Rep. Smiths [Bill Name] Analyzed by CRS\n" +
			"[Bill Name], introduced by Rep. John Smith, R-TX, on January 5, 2025, has been analyzed.",
	}
	source := &fakeSource{sponsor: ports.SponsorResult{Line: "John Smith, R-TX,", LastName: "Smith"}}

	got := newTestGenerator(completer, source).Generate(context.Background(), testMeta())
	if got.Outcome != domain.OutcomeMalformed {
		t.Fatalf("expected malformed for unfilled placeholder, got %v", got.Outcome)
	}
	if got.Filename != "" || got.Headline != "" || got.Body != "" {
		t.Fatalf("malformed outcome must carry empty outputs: %+v", got)
	}
}
