package trace

import (
	"regexp"
	"strings"
)

var valueRun = regexp.MustCompile(`[A-Za-z0-9-]+`)

// ParseOMapValue reconstructs a value from the hexdump-style output of
// `rados getomapval`. The dump interleaves the value with annotation
// lines ("value (N bytes)") and a trailing byte offset; only lines that
// contain a space and are not annotations contribute, and from each the
// last alphanumeric/dash run is the readable chunk of the value.
func ParseOMapValue(out string) string {
	var b strings.Builder
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, " ") {
			continue
		}
		if strings.Contains(line, "value") && strings.Contains(line, "bytes") {
			continue
		}
		runs := valueRun.FindAllString(line, -1)
		if len(runs) > 0 {
			b.WriteString(runs[len(runs)-1])
		}
	}
	return b.String()
}
