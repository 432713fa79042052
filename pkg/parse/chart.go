package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vizforge/vizforge/pkg/model"
)

// chartLine matches "label: 123" or "label = 4.5". The number may carry a
// decimal part; anything after it on the line is ignored.
var chartLine = regexp.MustCompile(`^([^:=]+)\s*[:=]\s*(\d+(?:\.\d+)?)`)

// Chart parses "label: number" lines into an ordered series.
// Lines matching no pattern are silently skipped; order is preserved and
// labels are not deduplicated. A text with no matching lines yields an empty
// (nil) series, not an error.
func Chart(text string) []model.SeriesPoint {
	var points []model.SeriesPoint
	for _, line := range splitLines(text) {
		m := chartLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue // regexp guarantees a valid float, but be safe
		}
		points = append(points, model.SeriesPoint{
			Label: strings.TrimSpace(m[1]),
			Value: value,
		})
	}
	return points
}
