package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/ports"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/release"
)

// TestRun bypasses the URL queue entirely: it generates releases for a
// numeric bill range in both chambers and writes the results to a local
// CSV file for manual inspection. Nothing is persisted.
type TestRun struct {
	source    ports.BillSource
	generator ReleaseGenerator
	logger    *slog.Logger
}

// NewTestRun wires the data source and the generator.
func NewTestRun(source ports.BillSource, generator ReleaseGenerator, logger *slog.Logger) *TestRun {
	return &TestRun{source: source, generator: generator, logger: logger}
}

// Run generates [start, end) for the Senate then the House and writes
// outPath, overwriting any previous file.
func (t *TestRun) Run(ctx context.Context, start, end int, outPath string) error {
	var rows [][]string
	for _, chamber := range []domain.Chamber{domain.Senate, domain.House} {
		for number := start; number < end; number++ {
			rows = append(rows, t.generateOne(ctx, chamber, number))
		}
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"FileName", "Headline", "Press release", "Cosponsors"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	t.logger.Info("test outputs written", "path", outPath, "rows", len(rows))
	return nil
}

func (t *TestRun) generateOne(ctx context.Context, chamber domain.Chamber, number int) []string {
	empty := []string{"", "", "", ""}
	billNumber := fmt.Sprintf("%d", number)

	text, summary, summaryDate, err := t.source.TextAndSummary(ctx, billNumber, chamber)
	if err != nil || text == "" || summary == "" || summaryDate == "" {
		t.logger.Debug("no content for bill", "chamber", chamber, "number", number)
		return empty
	}

	meta := domain.BillMetadata{
		URL:         chamber.BillURL(number),
		Chamber:     chamber,
		BillNumber:  billNumber,
		Text:        text,
		Summary:     summary,
		SummaryDate: summaryDate,
	}

	generated := t.generator.Generate(ctx, meta)
	if generated.Outcome != domain.OutcomeOK {
		t.logger.Debug("generation unavailable for bill", "chamber", chamber, "number", number)
		return empty
	}

	body := generated.Body + sourceSeparator + meta.URL

	cosponsors := ""
	if introDate, ok := release.IntroDateSlash(text, chamber); ok {
		cosponsors, err = t.source.CosponsorSummary(ctx, chamber, billNumber, introDate)
		if err != nil {
			t.logger.Debug("cosponsor summary unavailable", "chamber", chamber, "number", number, "error", err)
		}
	}

	return []string{generated.Filename, generated.Headline, body, cosponsors}
}
