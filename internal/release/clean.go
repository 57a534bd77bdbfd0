package release

import (
	"strings"
	"unicode"
)

// asciiReplacer folds the unicode punctuation models habitually emit into
// plain ASCII before the byte-level cleanup runs.
var asciiReplacer = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"–", "-", "—", "--",
	"…", "...",
	" ", " ",
)

func foldASCII(text string) string {
	text = asciiReplacer.Replace(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Clean normalizes model output for the newsroom store: ASCII folding,
// markdown emphasis and heading markers dropped, doubled quotes collapsed,
// the literal separator token removed, then all quotes and stray
// "Headline:" labels stripped.
func Clean(text string) string {
	text = foldASCII(text)
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, `""`, `"`)
	text = strings.ReplaceAll(text, "###", "")
	text = strings.ReplaceAll(text, "[NEWLINE SEPARATOR]", "")
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, `"`, "")
	text = strings.ReplaceAll(text, "Headline:", "")
	text = strings.ReplaceAll(text, "headline:", "")
	return strings.TrimSpace(text)
}
