package release

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/ports"
)

const placeholderBillName = "[Bill Name]"

// Generator turns bill metadata into a press release via one completion
// call, applying the post-generation normalization contract.
type Generator struct {
	completer ports.Completer
	source    ports.BillSource
	logger    *slog.Logger
	now       func() time.Time
}

// NewGenerator wires the completion client and the sponsor lookup source.
func NewGenerator(completer ports.Completer, source ports.BillSource, logger *slog.Logger) *Generator {
	return &Generator{
		completer: completer,
		source:    source,
		logger:    logger,
		now:       time.Now,
	}
}

// Filename is the cheap path: it derives the deterministic filename
// without touching the sponsor lookup or the completion API, so the driver
// can detect duplicates before spending a generation call.
func (g *Generator) Filename(meta domain.BillMetadata) (string, bool) {
	return Filename(meta.Chamber, meta.BillNumber, meta.Text)
}

// Generate produces the full release. Outcomes:
//   - OutcomeNotYetAvailable when the bill text has no intro-date marker;
//   - OutcomeRateLimited when the sponsor lookup or the completion API
//     returns 429 (the caller must halt the run);
//   - OutcomeMalformed when the sponsor is unknown or the model response
//     cannot be used (defer and retry on a later run);
//   - OutcomeOK with filename, headline, body and detected state tags.
func (g *Generator) Generate(ctx context.Context, meta domain.BillMetadata) domain.Release {
	filename, ok := g.Filename(meta)
	if !ok {
		return domain.Release{Outcome: domain.OutcomeNotYetAvailable}
	}

	sponsor, err := g.source.PrimarySponsor(ctx, meta.Chamber, meta.BillNumber)
	if err != nil {
		g.debug("sponsor lookup failed", "bill", meta.BillNumber, "error", err)
		return domain.Release{Outcome: domain.OutcomeMalformed}
	}
	if sponsor.RateLimited {
		return domain.Release{Outcome: domain.OutcomeRateLimited}
	}
	if sponsor.Line == "" || sponsor.LastName == "" {
		return domain.Release{Outcome: domain.OutcomeMalformed}
	}

	prompt := BuildPrompt(meta, sponsor.Line, sponsor.LastName, FormatSummaryDate(meta.SummaryDate))

	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, ports.ErrCompletionRateLimited) {
			return domain.Release{Outcome: domain.OutcomeRateLimited}
		}
		g.debug("completion failed", "bill", meta.BillNumber, "error", err)
		return domain.Release{Outcome: domain.OutcomeMalformed}
	}

	parts := strings.SplitN(strings.TrimSpace(raw), "\n", 2)
	if len(parts) != 2 {
		g.debug("response missing headline separator", "bill", meta.BillNumber)
		return domain.Release{Outcome: domain.OutcomeMalformed}
	}

	headline := Clean(parts[0])
	body := Clean(parts[1])

	// The model regularly forgets the bill-number parenthetical from the
	// attribution sentence; patch it in after the first comma.
	formattedNumber := fmt.Sprintf("(%s %s)", meta.Chamber.BillLabel(), meta.BillNumber)
	if !strings.Contains(body, formattedNumber) {
		if idx := strings.Index(body, ","); idx >= 0 {
			body = body[:idx] + " " + formattedNumber + body[idx:]
		}
	}

	body = fmt.Sprintf("WASHINGTON, %s -- %s", DatelineDate(g.now()), body)
	body = Clean(body)

	if strings.Contains(body, placeholderBillName) {
		g.debug("model left placeholder unfilled", "bill", meta.BillNumber)
		return domain.Release{Outcome: domain.OutcomeMalformed}
	}

	return domain.Release{
		Outcome:   domain.OutcomeOK,
		Filename:  filename,
		Headline:  headline,
		Body:      body,
		StateTags: ExtractStateTags(body),
	}
}

func (g *Generator) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}
