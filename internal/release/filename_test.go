package release

import (
	"testing"
	"time"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
)

const houseIntroText = `118th CONGRESS
1st Session

IN THE HOUSE OF REPRESENTATIVES
January 5, 2025

Mr. Smith introduced the following bill`

func TestFilenameHouse(t *testing.T) {
	t.Parallel()

	filename, ok := Filename(domain.House, "1234", houseIntroText)
	if !ok {
		t.Fatalf("expected filename, got not-yet-available")
	}
	if filename != "$H billSumh-250105-hr1234" {
		t.Fatalf("unexpected filename: %q", filename)
	}
}

func TestFilenameSenateWithLegislativeDayAside(t *testing.T) {
	t.Parallel()

	text := "IN THE SENATE OF THE UNITED STATES\nMarch 11 (legislative day, March 10), 2025\n"
	filename, ok := Filename(domain.Senate, "99", text)
	if !ok {
		t.Fatalf("expected filename, got not-yet-available")
	}
	if filename != "$H billSums-250311-s99" {
		t.Fatalf("unexpected filename: %q", filename)
	}
}

func TestFilenameDeterministic(t *testing.T) {
	t.Parallel()

	first, _ := Filename(domain.House, "1234", houseIntroText)
	second, _ := Filename(domain.House, "1234", houseIntroText)
	if first != second {
		t.Fatalf("filename not deterministic: %q vs %q", first, second)
	}
}

func TestFilenameNoMarker(t *testing.T) {
	t.Parallel()

	if _, ok := Filename(domain.House, "1234", "no introduction block here"); ok {
		t.Fatalf("expected not-yet-available for missing marker")
	}
	// The senate marker must not satisfy a house bill.
	text := "IN THE SENATE OF THE UNITED STATES\nJanuary 5, 2025\n"
	if _, ok := Filename(domain.House, "1234", text); ok {
		t.Fatalf("expected not-yet-available for wrong chamber marker")
	}
}

func TestIntroDateSlash(t *testing.T) {
	t.Parallel()

	got, ok := IntroDateSlash(houseIntroText, domain.House)
	if !ok {
		t.Fatalf("expected intro date")
	}
	if got != "1/5/2025" {
		t.Fatalf("unexpected slash date: %q", got)
	}
}

func TestFormatSummaryDate(t *testing.T) {
	t.Parallel()

	if got := FormatSummaryDate("2025-03-12"); got != "March 12, 2025" {
		t.Fatalf("unexpected formatted date: %q", got)
	}
	if got := FormatSummaryDate("2025-03-01"); got != "March 1, 2025" {
		t.Fatalf("leading zero not removed: %q", got)
	}
	if got := FormatSummaryDate("not-a-date"); got != "Invalid date format" {
		t.Fatalf("unexpected invalid result: %q", got)
	}
}

func TestDatelineDate(t *testing.T) {
	t.Parallel()

	march := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
	if got := DatelineDate(march); got != "March 7" {
		t.Fatalf("short month should be spelled out: %q", got)
	}

	september := time.Date(2025, time.September, 3, 12, 0, 0, 0, time.UTC)
	if got := DatelineDate(september); got != "Sep. 3" {
		t.Fatalf("long month should be abbreviated: %q", got)
	}
}

func TestBillNumberFromURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		url  string
		want string
	}{
		{"https://www.congress.gov/bill/119th-congress/house-bill/1234", "1234"},
		{"https://www.congress.gov/bill/119th-congress/house-bill/1234/text", "1234"},
		{"https://www.congress.gov/bill/119th-congress/senate-bill/7/", "7"},
	}

	for _, tc := range cases {
		if got := BillNumberFromURL(tc.url); got != tc.want {
			t.Fatalf("BillNumberFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
