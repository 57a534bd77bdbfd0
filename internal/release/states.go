package release

import "regexp"

// stateTagIDs maps USPS state abbreviations to newsroom tag identifiers.
var stateTagIDs = map[string]int{
	"AL": 67, "AK": 68, "AZ": 69, "AR": 70, "CA": 71,
	"CO": 72, "CT": 73, "DE": 74, "DC": 75, "FL": 76,
	"GA": 77, "HI": 78, "ID": 79, "IL": 80, "IN": 81,
	"IA": 82, "KS": 83, "KY": 84, "LA": 85, "ME": 86,
	"MD": 87, "MA": 88, "MI": 89, "MN": 90, "MS": 91,
	"MO": 92, "MT": 93, "NE": 94, "NV": 95, "NH": 96,
	"NJ": 97, "NM": 98, "NY": 99, "NC": 100, "ND": 101,
	"OH": 102, "OK": 103, "OR": 104, "PA": 105, "RI": 106,
	"SC": 107, "SD": 108, "TN": 109, "TX": 110, "UT": 111,
	"VT": 112, "VA": 113, "WA": 114, "WV": 115, "WI": 116,
	"WY": 117,
}

// Matches party/state markers like R-UT, [D-NY-14] or I-VT.
var stateMarkerExpr = regexp.MustCompile(`\b[DRI]-([A-Z]{2})(?:-\d{1,2})?\b`)

// ExtractStateTags scans a press release body for party/state markers and
// returns the tag ids for every recognized state, deduplicated. Unknown
// two-letter codes are ignored.
func ExtractStateTags(body string) map[string]int {
	found := map[string]int{}
	for _, match := range stateMarkerExpr.FindAllStringSubmatch(body, -1) {
		abbr := match[1]
		if id, ok := stateTagIDs[abbr]; ok {
			found[abbr] = id
		}
	}
	return found
}
