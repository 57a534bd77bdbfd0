package release

import (
	"fmt"
	"regexp"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
)

// Viewer links inside the bill text would leak into the generated story.
var congressLinkExpr = regexp.MustCompile(`https://www\.congress\.gov[^\s]*`)

// StripCongressLinks removes congress.gov URLs from bill text before it is
// embedded in the prompt.
func StripCongressLinks(text string) string {
	return congressLinkExpr.ReplaceAllString(text, "")
}

// BuildPrompt renders the fixed generation instructions: a headline
// following the CRS-analysis naming template and a body whose first
// sentence follows the attribution template with sponsor and summary date.
func BuildPrompt(meta domain.BillMetadata, sponsorLine, lastName, summaryDate string) string {
	honorific := meta.Chamber.Honorific()

	return fmt.Sprintf(`
Write a 300-word news story about this %s bill, following these rules:

Headline:
- Follow this Exact Format: %s %ss [Last Name] [Bill Name] Analyzed by CRS
(Do not include the bill number in the headline.)

[NEWLINE SEPARATOR]

First Paragraph:
- DO NOT add any location or dateline at the beginning (e.g., "Washington, D.C. --" or similar).
- The first sentence must follow this Exact format: [Bill Name], introduced by %s %s on %s, has been analyzed by the Congressional Research Service.
- Be sure to include **commas before and after the party/state**, e.g., Sen. Jane Doe, D-NY,
- Immediately follow this sentence with a concise summary of the bill's purpose in plain, informative language. Prioritize clarity and flow.

Body:
- Use structured paragraphs.
- No quotes.
- Add context (motivation, impact, background).
- Do not mention or list any cosponsors or other legislators by name.
- Focus on the bill's purpose using the summary mainly, supplement information with the bill text

Bill Details:
Summary of the bill:
%s
Full Bill Text:
%s
Primary Sponsor's Name and State Code:
%s
`,
		meta.Chamber.Title(),
		honorific, lastName,
		honorific, sponsorLine, summaryDate,
		meta.Summary,
		StripCongressLinks(meta.Text),
		sponsorLine,
	)
}
