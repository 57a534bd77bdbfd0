package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/ports"
)

// Backlog seeds the URL queue with bill numbers published upstream that
// the store has not seen yet.
type Backlog struct {
	queue  ports.QueueStore
	source ports.BillSource
	logger *slog.Logger
}

// NewBacklog wires the locator and the queue store.
func NewBacklog(queue ports.QueueStore, source ports.BillSource, logger *slog.Logger) *Backlog {
	return &Backlog{queue: queue, source: source, logger: logger}
}

// SeedAll seeds both chambers. Chambers whose latest bill number cannot be
// determined are skipped for this run rather than treated as fatal.
func (b *Backlog) SeedAll(ctx context.Context) error {
	for _, chamber := range []domain.Chamber{domain.House, domain.Senate} {
		if err := b.Seed(ctx, chamber); err != nil {
			return err
		}
	}
	return nil
}

// Seed queues every bill number in (knownMax, latestMax] for the chamber
// as a pending URL. The whole seed commits once.
func (b *Backlog) Seed(ctx context.Context, chamber domain.Chamber) error {
	latest, found := b.source.LatestBillNumber(ctx, chamber)
	if !found {
		b.logger.Warn("latest bill number unavailable, skipping seed", "chamber", chamber)
		return nil
	}

	known, err := b.queue.MaxBillNumber(ctx, chamber)
	if err != nil {
		return fmt.Errorf("max bill number for %s: %w", chamber, err)
	}

	if latest <= known {
		b.logger.Debug("queue already current", "chamber", chamber, "known", known, "latest", latest)
		return nil
	}

	numbers := make([]int, 0, latest-known)
	for n := known + 1; n <= latest; n++ {
		numbers = append(numbers, n)
	}

	if err := b.queue.InsertPending(ctx, chamber, numbers); err != nil {
		return fmt.Errorf("seed %s bills: %w", chamber, err)
	}

	b.logger.Info("seeded new bill urls", "chamber", chamber, "count", len(numbers), "latest", latest)
	return nil
}
