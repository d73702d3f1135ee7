package analysis

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/neonyanbbcode/MarketAnly/internal/logging"
	"github.com/neonyanbbcode/MarketAnly/models"
)

// fencedJSONRe matches the first fenced block labeled json. First match
// only; the source is free text from a generative service, so this is a
// tolerant convenience scan, not a schema boundary.
var fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ParsedReport is the outcome of splitting a raw response into the
// human-readable report and the optional visualization snapshot.
type ParsedReport struct {
	MarkdownReport string
	Visualization  *models.VisualizationData
	// Degraded marks a block that was present but failed to decode. The
	// report then keeps the original text untouched so nothing is lost.
	Degraded bool
}

// ParseAnalysisText extracts the embedded structured block from raw
// response text.
//
// No block: the full text is the report. Malformed block: logged, report
// unchanged, no record. Well-formed block: record produced and the block,
// delimiters included, stripped from the report. Any further fenced blocks
// remain embedded as-is.
func ParseAnalysisText(raw string) ParsedReport {
	loc := fencedJSONRe.FindStringSubmatchIndex(raw)
	if loc == nil {
		return ParsedReport{MarkdownReport: raw}
	}

	body := raw[loc[2]:loc[3]]
	var record models.VisualizationData
	if err := json.Unmarshal([]byte(body), &record); err != nil {
		logging.Log.WithError(err).Warn("visualization block present but not decodable, keeping report as-is")
		return ParsedReport{MarkdownReport: raw, Degraded: true}
	}

	report := strings.TrimSpace(raw[:loc[0]] + raw[loc[1]:])
	return ParsedReport{
		MarkdownReport: report,
		Visualization:  &record,
	}
}
