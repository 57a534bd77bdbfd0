package congress

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/ports"
)

const (
	defaultBaseURL  = "https://api.congress.gov/v3"
	listingPageSize = 250
	formattedText   = "Formatted Text"
)

// Client talks to the congress.gov v3 API. Responses arrive as either JSON
// or XML depending on endpoint and mood; every payload is decoded from
// whichever encoding is present.
type Client struct {
	baseURL  string
	apiKey   string
	congress int
	client   *http.Client
	logger   *slog.Logger
}

var _ ports.BillSource = (*Client)(nil)

// NewClient wires the API credential; a nil HTTP client gets a default
// with a conservative timeout.
func NewClient(baseURL, apiKey string, client *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		congress: domain.Congress,
		client:   client,
		logger:   logger,
	}
}

func (c *Client) billPath(chamber domain.Chamber, billNumber string) string {
	return fmt.Sprintf("%s/bill/%d/%s/%s", c.baseURL, c.congress, chamber.BillType(), billNumber)
}

// TextAndSummary fetches the official summary (with its action date) and
// the formatted bill text. Each half is independently optional: a failure
// on one side never discards the other. Only total failure of both
// returns an error.
func (c *Client) TextAndSummary(ctx context.Context, billNumber string, chamber domain.Chamber) (string, string, string, error) {
	base := c.billPath(chamber, billNumber)

	summary, summaryDate, sumErr := c.fetchSummary(ctx, base+"/summaries")
	if sumErr != nil {
		c.debug("summary fetch failed", "bill", billNumber, "error", sumErr)
	}

	text, textErr := c.fetchText(ctx, base+"/text")
	if textErr != nil {
		c.debug("text fetch failed", "bill", billNumber, "error", textErr)
	}

	if sumErr != nil && textErr != nil {
		return "", "", "", fmt.Errorf("bill %s unavailable: %w", billNumber, textErr)
	}

	return text, summary, summaryDate, nil
}

func (c *Client) fetchSummary(ctx context.Context, url string) (string, string, error) {
	body, status, err := c.get(ctx, url)
	if err != nil {
		return "", "", err
	}
	if status != http.StatusOK {
		return "", "", fmt.Errorf("summaries endpoint returned %d", status)
	}

	var payload summariesPayload
	if err := decodePayload(body, &payload); err != nil {
		return "", "", fmt.Errorf("decode summaries: %w", err)
	}
	if len(payload.Summaries) == 0 {
		return "", "", nil
	}

	// Last entry is the most recent summary version.
	latest := payload.Summaries[len(payload.Summaries)-1]
	date := latest.ActionDate
	if date == "" && len(latest.UpdateDate) >= 10 {
		date = latest.UpdateDate[:10]
	}

	return stripHTML(latest.Text), date, nil
}

func (c *Client) fetchText(ctx context.Context, url string) (string, error) {
	body, status, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("text endpoint returned %d", status)
	}

	var payload textVersionsPayload
	if err := decodePayload(body, &payload); err != nil {
		return "", fmt.Errorf("decode text versions: %w", err)
	}
	if len(payload.TextVersions) == 0 {
		return "", nil
	}

	var htmlURL string
	for _, format := range payload.TextVersions[0].Formats {
		if strings.TrimSpace(format.Type) == formattedText {
			htmlURL = strings.TrimSpace(format.URL)
			break
		}
	}
	if htmlURL == "" {
		// No formatted rendition published yet; not an error.
		return "", nil
	}

	page, status, err := c.get(ctx, htmlURL)
	if err != nil {
		return "", fmt.Errorf("fetch bill text page: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("bill text page returned %d", status)
	}

	return stripHTML(string(page)), nil
}

// PrimarySponsor resolves the bill's first sponsor through two lookups:
// bill detail for the sponsor reference, then the member record for the
// display name. A 429 anywhere is surfaced as RateLimited so the caller
// halts the run; any other HTTP failure or an empty sponsor list is
// ordinary absence.
func (c *Client) PrimarySponsor(ctx context.Context, chamber domain.Chamber, billNumber string) (ports.SponsorResult, error) {
	body, status, err := c.get(ctx, c.billPath(chamber, billNumber))
	if err != nil {
		return ports.SponsorResult{}, err
	}
	if status == http.StatusTooManyRequests {
		c.debug("429 from bill detail", "bill", billNumber)
		return ports.SponsorResult{RateLimited: true}, nil
	}
	if status != http.StatusOK {
		c.debug("bill detail lookup failed", "bill", billNumber, "status", status)
		return ports.SponsorResult{}, nil
	}

	var detail billDetailPayload
	if err := decodePayload(body, &detail); err != nil {
		return ports.SponsorResult{}, fmt.Errorf("decode bill detail: %w", err)
	}
	if len(detail.Bill.Sponsors) == 0 {
		c.debug("no sponsors listed", "bill", billNumber)
		return ports.SponsorResult{}, nil
	}

	sponsor := detail.Bill.Sponsors[0]

	body, status, err = c.get(ctx, strings.TrimSpace(sponsor.URL))
	if err != nil {
		return ports.SponsorResult{}, err
	}
	if status == http.StatusTooManyRequests {
		return ports.SponsorResult{RateLimited: true}, nil
	}
	if status != http.StatusOK {
		c.debug("member lookup failed", "bill", billNumber, "status", status)
		return ports.SponsorResult{}, nil
	}

	var member memberPayload
	if err := decodePayload(body, &member); err != nil {
		return ports.SponsorResult{}, fmt.Errorf("decode member: %w", err)
	}
	if member.Member.DirectOrderName == "" || member.Member.LastName == "" {
		return ports.SponsorResult{}, nil
	}

	line := fmt.Sprintf("%s, %s-%s,", member.Member.DirectOrderName, sponsor.Party, sponsor.State)
	return ports.SponsorResult{Line: line, LastName: member.Member.LastName}, nil
}

// LatestBillNumber returns the highest numeric bill number in the most
// recent listing batch (sorted by latest action; the API offers no sort by
// introduction date). The second return is false when the source is
// unreachable or no numbers parse; callers skip backlog seeding then.
func (c *Client) LatestBillNumber(ctx context.Context, chamber domain.Chamber) (int, bool) {
	url := fmt.Sprintf("%s/bill/%d/%s?limit=%d", c.baseURL, c.congress, chamber.BillType(), listingPageSize)

	body, status, err := c.get(ctx, url)
	if err != nil {
		c.debug("bill listing failed", "chamber", chamber, "error", err)
		return 0, false
	}
	if status != http.StatusOK {
		c.debug("bill listing failed", "chamber", chamber, "status", status)
		return 0, false
	}

	var listing billListingPayload
	if err := decodePayload(body, &listing); err != nil {
		c.debug("decode bill listing failed", "chamber", chamber, "error", err)
		return 0, false
	}

	max := -1
	for _, bill := range listing.Bills {
		number, err := strconv.Atoi(strings.TrimSpace(bill.Number))
		if err != nil {
			continue
		}
		if number > max {
			max = number
		}
	}
	if max < 0 {
		return 0, false
	}

	return max, true
}

// CosponsorSummary builds the fixed-format cosponsor sentence for a bill
// by walking the cosponsor list and looking up each member record.
func (c *Client) CosponsorSummary(ctx context.Context, chamber domain.Chamber, billNumber, introDate string) (string, error) {
	url := fmt.Sprintf("%s/cosponsors?limit=%d", c.billPath(chamber, billNumber), listingPageSize)

	body, status, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	if status == http.StatusTooManyRequests {
		return "", fmt.Errorf("cosponsors endpoint rate limited")
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("cosponsors endpoint returned %d", status)
	}

	var payload cosponsorsPayload
	if err := decodePayload(body, &payload); err != nil {
		return "", fmt.Errorf("decode cosponsors: %w", err)
	}

	label := chamber.BillLabel() + " "
	count := len(payload.Cosponsors)

	if count == 0 {
		return fmt.Sprintf("The bill (%s%s) was introduced on %s.", label, billNumber, introDate), nil
	}

	honorific := chamber.Honorific()
	noun := "co-sponsors"
	if count == 1 {
		noun = "co-sponsor"
	} else {
		if chamber == domain.Senate {
			honorific = "Sens."
		} else {
			honorific = "Reps."
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The bill (%s%s) introduced on %s has %d %s: %s ", label, billNumber, introDate, count, noun, honorific)

	for i, cosponsor := range payload.Cosponsors {
		name, party, state, err := c.memberDetails(ctx, strings.TrimSpace(cosponsor.URL))
		if err != nil {
			return "", fmt.Errorf("cosponsor member lookup: %w", err)
		}

		separator := "; "
		if i == count-1 {
			separator = "."
		}
		fmt.Fprintf(&b, "%s, %s-%s%s", name, party, state, separator)
	}

	return b.String(), nil
}

func (c *Client) memberDetails(ctx context.Context, url string) (name, party, state string, err error) {
	body, status, err := c.get(ctx, url)
	if err != nil {
		return "", "", "", err
	}
	if status != http.StatusOK {
		return "", "", "", fmt.Errorf("member endpoint returned %d", status)
	}

	var payload memberPayload
	if err := decodePayload(body, &payload); err != nil {
		return "", "", "", fmt.Errorf("decode member: %w", err)
	}

	member := payload.Member
	if len(member.PartyHistory) > 0 {
		party = member.PartyHistory[0].PartyAbbreviation
	}
	if len(member.Terms) > 0 {
		state = member.Terms[len(member.Terms)-1].StateCode
	}

	return member.DirectOrderName, party, state, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
