package release

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
)

const (
	houseMarker  = "HOUSE OF REPRESENTATIVES"
	senateMarker = "SENATE OF THE UNITED STATES"
)

var introDateExprs = map[domain.Chamber]*regexp.Regexp{
	domain.House:  introDateExpr(houseMarker),
	domain.Senate: introDateExpr(senateMarker),
}

// The introduction block reads e.g.
//
//	IN THE SENATE OF THE UNITED STATES
//	March 11 (legislative day, March 10), 2025
//
// where the parenthetical aside is optional.
func introDateExpr(marker string) *regexp.Regexp {
	return regexp.MustCompile(
		`(?i)IN THE ` + marker + `[^\n]*\n\s*([A-Z][a-z]+ \d{1,2})(?: \([^)]+\))?, (\d{4})`)
}

// IntroDate extracts the introduction date following the chamber's
// fixed text marker. The second return is false when the marker or a
// parseable date is absent, which means the bill text is not final yet.
func IntroDate(text string, chamber domain.Chamber) (time.Time, bool) {
	expr, ok := introDateExprs[chamber]
	if !ok {
		return time.Time{}, false
	}

	match := expr.FindStringSubmatch(text)
	if match == nil {
		return time.Time{}, false
	}

	full := fmt.Sprintf("%s, %s", match[1], match[2])
	dt, err := time.Parse("January 2, 2006", full)
	if err != nil {
		return time.Time{}, false
	}
	return dt, true
}

// Filename derives the deterministic story filename from the chamber, bill
// number and the introduction date embedded in the bill text. The bool is
// false when no date marker is present yet (retry on a later run).
func Filename(chamber domain.Chamber, billNumber, text string) (string, bool) {
	dt, ok := IntroDate(text, chamber)
	if !ok {
		return "", false
	}

	code := "h"
	if chamber == domain.Senate {
		code = "s"
	}

	return fmt.Sprintf("$H billSum%s-%s-%s%s", code, dt.Format("060102"), chamber.BillType(), billNumber), true
}

// IntroDateSlash renders the introduction date as M/D/YYYY without leading
// zeros, used by the cosponsor summary sentence.
func IntroDateSlash(text string, chamber domain.Chamber) (string, bool) {
	dt, ok := IntroDate(text, chamber)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%d/%d/%d", int(dt.Month()), dt.Day(), dt.Year()), true
}

// FormatSummaryDate converts "2025-03-12" to "March 12, 2025".
func FormatSummaryDate(dateStr string) string {
	dt, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "Invalid date format"
	}
	return fmt.Sprintf("%s %d, %d", dt.Month(), dt.Day(), dt.Year())
}

// DatelineDate renders the dateline date for today: the month spelled out
// when five letters or fewer, otherwise abbreviated with a period, and the
// day without a leading zero.
func DatelineDate(now time.Time) string {
	month := now.Month().String()
	if len(month) > 5 {
		month = now.Format("Jan") + "."
	}
	return fmt.Sprintf("%s %d", month, now.Day())
}

// BillNumberFromURL pulls the numeric bill identifier out of a congress.gov
// viewer URL, tolerating a trailing "/text" segment.
func BillNumberFromURL(rawURL string) string {
	path := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		path = parsed.Path
	}

	path = strings.TrimRight(path, "/")
	segments := strings.Split(path, "/")
	if len(segments) == 0 {
		return ""
	}

	last := segments[len(segments)-1]
	if last == "text" && len(segments) > 1 {
		return segments[len(segments)-2]
	}
	return last
}
