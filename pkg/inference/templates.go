/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: templates.go
Description: Known-format template table for pattern inference. Each template
pairs an anchored detection regex with a curated output pattern; when every
example matches a template's detector, the curated pattern becomes a candidate.
The canonical example sets also drive reverse recognition: a caller-supplied
pattern that accepts every positive and rejects every negative is reported as
that format. Templates are ordered most-specific first so UUID outranks
generic hex runs.
*/

package inference

import "regexp"

// formatTemplate pairs a full-match detector with the curated pattern it
// suggests, plus canonical examples used to recognize equivalent patterns
type formatTemplate struct {
	detect    *regexp.Regexp
	pattern   string
	desc      string
	positives []string
	negatives []string
}

// templateTable is ordered most-specific first; order decides tie-breaks when
// several templates detect the same examples
var templateTable = []formatTemplate{
	{
		detect:    regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`),
		pattern:   `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
		desc:      "UUID",
		positives: []string{"550e8400-e29b-41d4-a716-446655440000", "123e4567-e89b-12d3-a456-426614174000"},
		negatives: []string{"not-a-uuid", "123"},
	},
	{
		detect:    regexp.MustCompile(`(?i)^([0-9a-f]{2}[:-]){5}[0-9a-f]{2}$`),
		pattern:   `[0-9a-fA-F]{2}[:-][0-9a-fA-F]{2}(?:[:-][0-9a-fA-F]{2}){4}`,
		desc:      "MAC address",
		positives: []string{"AA:BB:CC:DD:EE:FF", "00:11:22:33:44:55"},
		negatives: []string{"not-mac", "ZZ:ZZ:ZZ:ZZ:ZZ:ZZ"},
	},
	{
		detect:    regexp.MustCompile(`(?i)^#([0-9a-f]{3}|[0-9a-f]{6})$`),
		pattern:   `#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})`,
		desc:      "Hex color code",
		positives: []string{"#ff0000", "#0a0", "#ABC123"},
		negatives: []string{"ff0000", "#xyz", "red"},
	},
	{
		detect:    regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		pattern:   `\d{4}-\d{2}-\d{2}`,
		desc:      "ISO 8601 date (YYYY-MM-DD)",
		positives: []string{"2024-01-15", "2000-12-31"},
		negatives: []string{"not-a-date", "2024/01/15"},
	},
	{
		detect:    regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
		pattern:   `\d{2}/\d{2}/\d{4}`,
		desc:      "US date format (MM/DD/YYYY)",
		positives: []string{"01/15/2024", "12/31/2000"},
		negatives: []string{"2024-01-15", "not-date"},
	},
	{
		detect:    regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`),
		pattern:   `\d{2}:\d{2}:\d{2}`,
		desc:      "Time with seconds (HH:MM:SS)",
		positives: []string{"14:30:00", "23:59:59"},
		negatives: []string{"14:30", "not-time"},
	},
	{
		detect:    regexp.MustCompile(`^\d{2}:\d{2}$`),
		pattern:   `\d{2}:\d{2}`,
		desc:      "Time (HH:MM)",
		positives: []string{"14:30", "23:59", "00:00"},
		negatives: []string{"14:30:00", "not-time"},
	},
	{
		detect:    regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`),
		pattern:   `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
		desc:      "Email address",
		positives: []string{"user@example.com", "admin@test.org"},
		negatives: []string{"not-email", "@missing", "no-at-sign"},
	},
	{
		detect:    regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`),
		pattern:   `\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`,
		desc:      "IPv4 address",
		positives: []string{"192.168.1.1", "10.0.0.1", "255.255.255.0"},
		negatives: []string{"not-ip", "999.999.999.999.999"},
	},
	{
		detect:    regexp.MustCompile(`^https?://\S+$`),
		pattern:   `https?://\S+`,
		desc:      "URL (HTTP/HTTPS)",
		positives: []string{"https://example.com", "http://test.org/path?q=1"},
		negatives: []string{"not-url", "ftp://other"},
	},
	{
		detect:    regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?(\+[a-zA-Z0-9.]+)?$`),
		pattern:   `\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?(?:\+[a-zA-Z0-9.]+)?`,
		desc:      "Semantic version (SemVer)",
		positives: []string{"1.0.0", "2.3.4-beta.1", "10.20.30+build.123"},
		negatives: []string{"not-semver", "1.2"},
	},
	{
		detect:    regexp.MustCompile(`^\+?\d[\d\-\s().]{6,}\d$`),
		pattern:   `\+?\d[\d\-\s().]{6,}\d`,
		desc:      "Phone number",
		positives: []string{"555-123-4567", "+1 555 123 4567"},
		negatives: []string{"not-a-phone", "12"},
	},
}

// detectKnownFormats returns the curated pattern for every template whose
// detector matches all examples
func detectKnownFormats(examples []string) []formatTemplate {
	var matched []formatTemplate
	for _, t := range templateTable {
		all := true
		for _, e := range examples {
			if !t.detect.MatchString(e) {
				all = false
				break
			}
		}
		if all {
			matched = append(matched, t)
		}
	}
	return matched
}

// RecognizeFormat reports whether a pattern behaves like one of the known
// format templates. The pattern is anchored and run against each template's
// canonical examples; it must accept every positive and reject every negative.
// Patterns that do not compile on the standard engine are never recognized.
func RecognizeFormat(pattern string) (string, bool) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return "", false
	}

	for _, t := range templateTable {
		ok := true
		for _, e := range t.positives {
			if !re.MatchString(e) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, e := range t.negatives {
			if re.MatchString(e) {
				ok = false
				break
			}
		}
		if ok {
			return t.desc, true
		}
	}

	return "", false
}
