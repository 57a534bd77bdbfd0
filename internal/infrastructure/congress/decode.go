package congress

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The API serves the same logical payloads as JSON or XML (the XML root is
// <api-root>). Each struct below carries both tag sets so a single decode
// path handles either encoding.

type summariesPayload struct {
	Summaries []summaryItem `json:"summaries" xml:"summaries>summary"`
}

type summaryItem struct {
	Text       string `json:"text" xml:"text"`
	ActionDate string `json:"actionDate" xml:"actionDate"`
	UpdateDate string `json:"updateDate" xml:"updateDate"`
}

type textVersionsPayload struct {
	TextVersions []textVersion `json:"textVersions" xml:"textVersions>item"`
}

type textVersion struct {
	Formats []textFormat `json:"formats" xml:"formats>item"`
}

type textFormat struct {
	Type string `json:"type" xml:"type"`
	URL  string `json:"url" xml:"url"`
}

type billDetailPayload struct {
	Bill billDetail `json:"bill" xml:"bill"`
}

type billDetail struct {
	Sponsors []sponsorRef `json:"sponsors" xml:"sponsors>item"`
}

type sponsorRef struct {
	URL   string `json:"url" xml:"url"`
	Party string `json:"party" xml:"party"`
	State string `json:"state" xml:"state"`
}

type memberPayload struct {
	Member memberRecord `json:"member" xml:"member"`
}

type memberRecord struct {
	DirectOrderName string        `json:"directOrderName" xml:"directOrderName"`
	LastName        string        `json:"lastName" xml:"lastName"`
	PartyHistory    []partyRecord `json:"partyHistory" xml:"partyHistory>item"`
	Terms           []termRecord  `json:"terms" xml:"terms>item"`
}

type partyRecord struct {
	PartyAbbreviation string `json:"partyAbbreviation" xml:"partyAbbreviation"`
}

type termRecord struct {
	StateCode string `json:"stateCode" xml:"stateCode"`
}

type billListingPayload struct {
	Bills []billListItem `json:"bills" xml:"bills>bill"`
}

type billListItem struct {
	Number string `json:"number" xml:"number"`
}

type cosponsorsPayload struct {
	Cosponsors []cosponsorRef `json:"cosponsors" xml:"cosponsors>item"`
}

type cosponsorRef struct {
	URL string `json:"url" xml:"url"`
}

// decodePayload parses whichever encoding is present: payloads opening
// with '<' are XML, everything else is treated as JSON.
func decodePayload(body []byte, v any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty payload")
	}

	if trimmed[0] == '<' {
		return xml.Unmarshal(trimmed, v)
	}
	return json.Unmarshal(trimmed, v)
}

// stripHTML reduces an HTML-bearing payload to plain text: script, style
// and page-chrome elements removed, markup dropped, entities decoded.
func stripHTML(raw string) string {
	if raw == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(html.UnescapeString(raw))
	}

	doc.Find("script, style, nav, header, footer").Remove()

	text := doc.Text()
	return strings.TrimSpace(text)
}
