package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/ports"
)

// PostgresStore persists the URL queue and the story table.
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	logger  *slog.Logger
}

var _ ports.QueueStore = (*PostgresStore)(nil)
var _ ports.StoryStore = (*PostgresStore)(nil)

// NewPostgresStore connects to Postgres, verifies the connection and
// returns the store. Connection failure here is a startup abort.
func NewPostgresStore(dsn string, logger *slog.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  logger,
	}, nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// PendingURLs fetches up to limit pending queue rows for a chamber, in
// store retrieval order.
func (s *PostgresStore) PendingURLs(ctx context.Context, chamber domain.Chamber, limit int) ([]domain.QueuedURL, error) {
	query, args, err := s.builder.
		Select("id", "url").
		From("url_queue").
		Where(sq.Eq{"status": domain.StatusPending, "chamber": chamber}).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pending urls: %w", err)
	}
	defer rows.Close()

	var urls []domain.QueuedURL
	for rows.Next() {
		row := domain.QueuedURL{Chamber: chamber, Status: domain.StatusPending}
		if err := rows.Scan(&row.ID, &row.URL); err != nil {
			return nil, fmt.Errorf("scan pending url: %w", err)
		}
		urls = append(urls, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending urls: %w", err)
	}

	return urls, nil
}

// MarkProcessed transitions a queue row to the processed terminal state.
func (s *PostgresStore) MarkProcessed(ctx context.Context, urlID int64) error {
	return s.updateQueue(ctx, urlID, sq.Eq{"status": domain.StatusProcessed})
}

// SetNote overwrites the row's note; last note wins.
func (s *PostgresStore) SetNote(ctx context.Context, urlID int64, note string) error {
	return s.updateQueue(ctx, urlID, sq.Eq{"notes": note})
}

// LinkStory records the created story id on the queue row.
func (s *PostgresStore) LinkStory(ctx context.Context, urlID int64, storyID int64) error {
	return s.updateQueue(ctx, urlID, sq.Eq{"story_id": storyID})
}

func (s *PostgresStore) updateQueue(ctx context.Context, urlID int64, set map[string]any) error {
	query, args, err := s.builder.
		Update("url_queue").
		SetMap(set).
		Where(sq.Eq{"id": urlID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build queue update: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update url %d: %w", urlID, err)
	}
	return nil
}

// MaxBillNumber returns the highest bill number currently queued for the
// chamber, derived from the trailing URL segment; 0 when the queue is
// empty.
func (s *PostgresStore) MaxBillNumber(ctx context.Context, chamber domain.Chamber) (int, error) {
	query, args, err := s.builder.
		Select(`COALESCE(MAX(NULLIF(regexp_replace(url, '^.*/', ''), '')::int), 0)`).
		From("url_queue").
		Where(sq.Eq{"chamber": chamber}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build max bill query: %w", err)
	}

	var max int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("query max bill number: %w", err)
	}

	return max, nil
}

// InsertPending queues the given bill numbers as pending URLs. Individual
// conflicts are skipped without aborting the batch; the whole seed commits
// once at the end.
func (s *PostgresStore) InsertPending(ctx context.Context, chamber domain.Chamber, numbers []int) error {
	if len(numbers) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, number := range numbers {
		query, args, err := s.builder.
			Insert("url_queue").
			Columns("url", "chamber", "status").
			Values(chamber.BillURL(number), chamber, domain.StatusPending).
			Suffix("ON CONFLICT (url) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("build seed insert: %w", err)
		}

		// A failed statement aborts the whole Postgres transaction, so each
		// row gets its own savepoint to roll back to.
		if _, err := tx.ExecContext(ctx, "SAVEPOINT seed_row"); err != nil {
			return fmt.Errorf("savepoint for seed insert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			s.debug("seed insert failed", "chamber", chamber, "number", number, "error", err)
			if _, err := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT seed_row"); err != nil {
				return fmt.Errorf("roll back seed insert: %w", err)
			}
			continue
		}

		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT seed_row"); err != nil {
			return fmt.Errorf("release savepoint: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	return nil
}

// FilenameExists reports whether a story with the filename is already
// stored. The cheap pre-generation duplicate check uses this.
func (s *PostgresStore) FilenameExists(ctx context.Context, filename string) (bool, error) {
	query, args, err := s.builder.
		Select("1").
		From("story").
		Where(sq.Eq{"filename": filename}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build filename check: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check filename %s: %w", filename, err)
	}

	return true, nil
}

// InsertStory performs a conditional insert on the filename key and, when
// the row lands, attaches the state tag associations in the same
// transaction. inserted=false means the filename already existed.
func (s *PostgresStore) InsertStory(ctx context.Context, story domain.Story, tagIDs []int) (int64, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("begin story transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := s.builder.
		Insert("story").
		Columns("filename", "uname", "source", "by_line", "headline", "story_txt",
			"editor", "invoice_tag", "date_sent", "sent_to", "wire_to",
			"nexis_sent", "factiva_sent", "status", "content_date", "last_action", "orig_txt").
		Values(story.Filename, story.Uname, story.SourceID, story.Byline, story.Headline, story.Body,
			"", "", story.SentAt, "", "",
			nil, nil, "D", story.ContentDate.Format("2006-01-02"), time.Now(), story.SponsorBlob).
		Suffix("ON CONFLICT (filename) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build story insert: %w", err)
	}

	var storyID int64
	err = tx.QueryRowContext(ctx, query, args...).Scan(&storyID)
	if errors.Is(err, sql.ErrNoRows) {
		// Filename landed between the duplicate check and this insert.
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("insert story %s: %w", story.Filename, err)
	}

	for _, tagID := range tagIDs {
		query, args, err := s.builder.
			Insert("story_tag").
			Columns("id", "tag_id").
			Values(storyID, tagID).
			ToSql()
		if err != nil {
			return 0, false, fmt.Errorf("build tag insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, false, fmt.Errorf("insert tag %d for story %d: %w", tagID, storyID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("commit story transaction: %w", err)
	}

	return storyID, true, nil
}

func (s *PostgresStore) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
