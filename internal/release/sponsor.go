package release

import (
	"html"
	"regexp"
	"strings"
)

var (
	preBlockExpr = regexp.MustCompile(`(?s)<pre>(.*?)</pre>`)
	// Honorific up to (not including) the literal word "introduced".
	sponsorSpanExpr = regexp.MustCompile(`(?s)((?:Mr\.|Mrs\.|Ms\.|Dr\.)\s.*?)introduced`)
)

// ExtractSponsorPhrase pulls the "sponsors and cosponsors" preamble out of
// raw bill text: the span inside the first <pre> block running from the
// first honorific to just before "introduced", with whitespace collapsed.
// The phrase is stored verbatim with the story and never parsed further.
func ExtractSponsorPhrase(rawText string) (string, bool) {
	decoded := html.UnescapeString(rawText)

	pre := preBlockExpr.FindStringSubmatch(decoded)
	if pre == nil {
		return "", false
	}

	span := sponsorSpanExpr.FindStringSubmatch(pre[1])
	if span == nil {
		return "", false
	}

	return strings.Join(strings.Fields(span[1]), " "), true
}
