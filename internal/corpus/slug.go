package corpus

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
)

const fallbackSlug = "section"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a section or chapter title into its filename slug:
// lowercase, non-alphanumeric runs collapsed to single dashes, leading and
// trailing dashes trimmed. Titles that normalize to nothing (e.g. "@\"foo\"")
// fall back to a placeholder so filenames stay valid.
func Slugify(title string) string {
	if normalized, err := slug.Normalize(title); err == nil {
		if cleaned := collapse(normalized); cleaned != "" {
			return cleaned
		}
	}
	if cleaned := collapse(strings.ToLower(title)); cleaned != "" {
		return cleaned
	}
	return fallbackSlug
}

func collapse(value string) string {
	value = nonAlnum.ReplaceAllString(strings.ToLower(value), "-")
	return strings.Trim(value, "-")
}
