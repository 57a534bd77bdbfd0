package usecase

import (
	"fmt"
	"strings"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
)

// FormatRunSummary renders the fixed plain-text run report delivered to
// the notification channels. The format is read by humans only.
func FormatRunSummary(s domain.RunSummary) string {
	var params strings.Builder
	if s.TestRun {
		params.WriteString(" -t")
	}
	if s.PopulateFirst {
		params.WriteString(" -p")
	}
	if s.Chamber == domain.Senate {
		params.WriteString(" -S")
	} else {
		params.WriteString(" -H")
	}

	elapsed := s.EndTime.Sub(s.StartTime).Truncate(1e9)

	return fmt.Sprintf(`Bill Intro Load

Passed Parameters: %s
Pull House and Senate: %s

Docs Loaded: %d
URLS skipped due to duplication: %d
URLS held for re-evaluation: %d
Total URLS looked at: %d

Stopped Due to Rate Limit: %t

Start Time: %s
End Time: %s
Elapsed Time: %s
`,
		params.String(),
		s.Chamber.Title(),
		s.Processed,
		s.Skipped,
		s.Deferred,
		s.TotalURLs,
		s.Stopped,
		s.StartTime.Format("2006-01-02 15:04:05"),
		s.EndTime.Format("2006-01-02 15:04:05"),
		elapsed,
	)
}
