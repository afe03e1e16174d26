package corpus

import (
	"regexp"
	"strings"
)

// Top-level sections in the full reference look like "## [Values](...)"; the
// bracketed text is the section title.
var sectionHeading = regexp.MustCompile(`^## \[(.+?)\]`)

// Section describes one top-level section of the full reference.
type Section struct {
	// Index is the 1-based position of the section within the reference.
	Index int
	Title string
	Slug  string
	// Start and End are inclusive 0-based line offsets into the reference.
	Start int
	End   int
}

// ScanSections locates every top-level section heading and computes line
// ranges. A section runs from its heading to the line before the next
// heading; the last section runs to the end of the document.
func ScanSections(lines []string) []Section {
	type header struct {
		line  int
		title string
	}

	var headers []header
	for i, line := range lines {
		if m := sectionHeading.FindStringSubmatch(line); m != nil {
			headers = append(headers, header{line: i, title: m[1]})
		}
	}

	sections := make([]Section, 0, len(headers))
	for j, h := range headers {
		end := len(lines) - 1
		if j+1 < len(headers) {
			end = headers[j+1].line - 1
		}
		sections = append(sections, Section{
			Index: j + 1,
			Title: h.title,
			Slug:  Slugify(h.title),
			Start: h.line,
			End:   end,
		})
	}
	return sections
}

// SectionBody returns the section's line slice with trailing wrapper
// artifacts removed. The upstream HTML-to-Markdown conversion leaves stray
// closing "</div>" lines at slice boundaries.
func SectionBody(lines []string, s Section) []string {
	body := append([]string(nil), lines[s.Start:s.End+1]...)
	return TrimTrailingDivs(body)
}

// TrimTrailingDivs drops trailing lines that contain only a closing div tag.
func TrimTrailingDivs(body []string) []string {
	for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "</div>" {
		body = body[:len(body)-1]
	}
	return body
}

// splitByHeading cuts body at lines starting with marker, returning nil when
// the marker never occurs.
func splitByHeading(body []string, marker string) [][]string {
	var starts []int
	for i, line := range body {
		if strings.HasPrefix(line, marker) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return nil
	}

	parts := make([][]string, 0, len(starts))
	for i, start := range starts {
		end := len(body) - 1
		if i+1 < len(starts) {
			end = starts[i+1] - 1
		}
		parts = append(parts, body[start:end+1])
	}
	return parts
}
