package ticket

import "regexp"

// Ticket ids look like PROJECT-123 and are referenced in calendar events as
// [PROJECT-123] or {PROJECT-123}.
var ticketPattern = regexp.MustCompile(`[\[{](([a-zA-Z]+)-([0-9]+))[\]}]`)

// Extract returns all ticket ids referenced in the summary and description,
// in discovery order: summary matches first, left to right, then description
// matches. Each match is cut out of its field before searching again so a
// span is never counted twice. Duplicate ids are preserved; callers decide
// whether to deduplicate.
func Extract(summary string, description string) []string {
	var ids []string
	s, d := summary, description
	for {
		if m := ticketPattern.FindStringSubmatchIndex(s); m != nil {
			ids = append(ids, s[m[2]:m[3]])
			s = s[:m[0]] + s[m[1]:]
			continue
		}
		if m := ticketPattern.FindStringSubmatchIndex(d); m != nil {
			ids = append(ids, d[m[2]:m[3]])
			d = d[:m[0]] + d[m[1]:]
			continue
		}
		return ids
	}
}
