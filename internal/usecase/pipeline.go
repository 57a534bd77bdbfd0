package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/ports"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/release"
)

const sourceSeparator = "\n\n* * # * *\n\nPrimary source of information: "

// ReleaseGenerator is the generation collaborator contract the driver
// depends on: a cheap filename-only path and the full generation call.
type ReleaseGenerator interface {
	Filename(meta domain.BillMetadata) (string, bool)
	Generate(ctx context.Context, meta domain.BillMetadata) domain.Release
}

// StoryDefaults carries the fixed authoring metadata stamped onto every
// inserted story.
type StoryDefaults struct {
	Uname          string
	Byline         string
	HouseSourceID  int
	SenateSourceID int
}

// PipelineDeps wires all driven adapters into the batch driver.
type PipelineDeps struct {
	Queue      ports.QueueStore
	Stories    ports.StoryStore
	Source     ports.BillSource
	Generator  ReleaseGenerator
	Defaults   StoryDefaults
	BatchLimit int
	Logger     *slog.Logger
}

// Pipeline drives each pending URL to a terminal or deferred state:
// fetch -> sponsor phrase -> filename preview -> duplicate check -> full
// generation -> persist. Processing is strictly sequential; every state
// transition commits independently so a crash mid-run leaves completed
// URLs durably marked.
type Pipeline struct {
	queue      ports.QueueStore
	stories    ports.StoryStore
	source     ports.BillSource
	generator  ReleaseGenerator
	defaults   StoryDefaults
	batchLimit int
	logger     *slog.Logger
	now        func() time.Time
}

// NewPipeline constructs the batch driver.
func NewPipeline(deps PipelineDeps) *Pipeline {
	limit := deps.BatchLimit
	if limit <= 0 {
		limit = 2000
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Pipeline{
		queue:      deps.Queue,
		stories:    deps.Stories,
		source:     deps.Source,
		generator:  deps.Generator,
		defaults:   deps.Defaults,
		batchLimit: limit,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Run consumes one batch of pending URLs for the chamber and returns the
// run tallies. Per-URL failures are downgraded to deferred outcomes and
// never abort the batch; only a rate-limit signal stops the loop early.
func (p *Pipeline) Run(ctx context.Context, chamber domain.Chamber) (domain.RunSummary, error) {
	summary := domain.RunSummary{Chamber: chamber, StartTime: p.now()}

	rows, err := p.queue.PendingURLs(ctx, chamber, p.batchLimit)
	if err != nil {
		return summary, fmt.Errorf("load pending urls: %w", err)
	}

	seen := map[string]struct{}{}

	for _, row := range rows {
		canonical := domain.CanonicalURL(row.URL)
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		summary.TotalURLs++

		stop := p.processURL(ctx, row, canonical, chamber, &summary)
		if stop {
			summary.Stopped = true
			break
		}
	}

	summary.EndTime = p.now()
	return summary, nil
}

// processURL runs one URL through the state machine. The return value is
// true only for the rate-limit signal that must halt the whole batch.
func (p *Pipeline) processURL(ctx context.Context, row domain.QueuedURL, canonical string, chamber domain.Chamber, summary *domain.RunSummary) bool {
	url := canonical
	// Bill-viewer URLs need their text-bearing variant.
	if strings.Contains(url, "congress.gov") && !strings.HasSuffix(url, "/text") {
		url += "/text"
	}

	billNumber := release.BillNumberFromURL(url)

	text, billSummary, summaryDate, err := p.source.TextAndSummary(ctx, billNumber, chamber)
	if err != nil {
		p.logger.Debug("fetch failed", "url", url, "error", err)
	}
	if text == "" || billSummary == "" || summaryDate == "" {
		p.deferURL(ctx, row.ID, "No text and/or summary found yet", summary)
		return false
	}

	meta := domain.BillMetadata{
		URL:         url,
		Chamber:     chamber,
		BillNumber:  billNumber,
		Text:        text,
		Summary:     billSummary,
		SummaryDate: summaryDate,
	}
	if phrase, ok := release.ExtractSponsorPhrase(text); ok {
		meta.SponsorBlob = phrase
	}

	// Cheap path first: derive the filename without a generation call so
	// known duplicates cost nothing.
	filename, ok := p.generator.Filename(meta)
	if !ok {
		p.logger.Warn("filename preview failed", "url", url)
		p.deferURL(ctx, row.ID, "Filename preview failed", summary)
		return false
	}

	exists, err := p.stories.FilenameExists(ctx, filename)
	if err != nil {
		p.logger.Warn("duplicate check failed", "filename", filename, "error", err)
		p.deferURL(ctx, row.ID, "Duplicate check failed", summary)
		return false
	}
	if exists {
		p.logger.Info("skipping duplicate before generation", "filename", filename)
		p.markDuplicate(ctx, row.ID, summary)
		return false
	}

	generated := p.generator.Generate(ctx, meta)
	switch generated.Outcome {
	case domain.OutcomeRateLimited:
		return true

	case domain.OutcomeOK:
		// fall through to persistence below

	default:
		p.logger.Warn("generation unavailable", "url", url)
		p.deferURL(ctx, row.ID, "text not available through api", summary)
		return false
	}

	now := p.now()
	story := domain.Story{
		Filename:    generated.Filename,
		Headline:    generated.Headline,
		Body:        generated.Body + sourceSeparator + url,
		Uname:       p.defaults.Uname,
		Byline:      p.defaults.Byline,
		SourceID:    p.sourceID(chamber),
		SponsorBlob: meta.SponsorBlob,
		ContentDate: now,
		SentAt:      now,
	}

	storyID, inserted, err := p.stories.InsertStory(ctx, story, sortedTagIDs(generated.StateTags))
	if err != nil {
		p.logger.Error("story insert failed", "filename", generated.Filename, "error", err)
		p.deferURL(ctx, row.ID, "Story insert failed (possibly DB error)", summary)
		return false
	}
	if !inserted {
		// Lost the race window between check and insert; same terminal
		// outcome as the pre-check duplicate.
		p.markDuplicate(ctx, row.ID, summary)
		return false
	}

	p.commit(row.ID, p.queue.MarkProcessed(ctx, row.ID))
	p.commit(row.ID, p.queue.LinkStory(ctx, row.ID, storyID))
	summary.Processed++
	p.logger.Info("story stored", "filename", generated.Filename, "story_id", storyID)

	return false
}

func (p *Pipeline) deferURL(ctx context.Context, urlID int64, note string, summary *domain.RunSummary) {
	p.commit(urlID, p.queue.SetNote(ctx, urlID, note))
	summary.Deferred++
}

func (p *Pipeline) markDuplicate(ctx context.Context, urlID int64, summary *domain.RunSummary) {
	p.commit(urlID, p.queue.SetNote(ctx, urlID, "Duplicate filename in story table"))
	p.commit(urlID, p.queue.MarkProcessed(ctx, urlID))
	summary.Skipped++
}

func (p *Pipeline) commit(urlID int64, err error) {
	if err != nil {
		p.logger.Error("queue update failed", "url_id", urlID, "error", err)
	}
}

func (p *Pipeline) sourceID(chamber domain.Chamber) int {
	if chamber == domain.Senate {
		return p.defaults.SenateSourceID
	}
	return p.defaults.HouseSourceID
}

func sortedTagIDs(tags map[string]int) []int {
	ids := make([]int, 0, len(tags))
	for _, id := range tags {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
