package corpus

import "strings"

// RewriteAnchorLinks redirects anchor-only links at the full reference.
// Markdown links "](#X)" become "](<target>#X)" and raw HTML attributes
// `href="#X"` become `href="<target>#X"`, where target is the reference
// path relative to the file being written (e.g. "zig-0.15.1.md" for section
// files, "../zig-0.15.1.md" for chapter parts).
func RewriteAnchorLinks(text, target string) string {
	text = strings.ReplaceAll(text, "](#", "]("+target+"#")
	text = strings.ReplaceAll(text, `href="#`, `href="`+target+`#`)
	return text
}

// RestoreAnchorLinks undoes RewriteAnchorLinks for the given target,
// returning the text to its anchor-only form. The validator uses this to
// compare generated excerpts against the pristine reference.
func RestoreAnchorLinks(text, target string) string {
	text = strings.ReplaceAll(text, "]("+target+"#", "](#")
	text = strings.ReplaceAll(text, `href="`+target+`#`, `href="#`)
	return text
}
