package corpus

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Introduction", "introduction"},
		{"Hello World", "hello-world"},
		{"Zig Build System", "zig-build-system"},
		{"comptime", "comptime"},
		{"C", "c"},
		{"Result Location Semantics", "result-location-semantics"},
		{"struct", "struct"},
		{"Zero Bit Types", "zero-bit-types"},
		{"  spaced   out  ", "spaced-out"},
		{"Errors & Optionals", "errors-optionals"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestSlugifyFallsBackForSymbolOnlyTitles(t *testing.T) {
	if got := Slugify("@!?"); got != fallbackSlug {
		t.Fatalf("expected fallback slug, got %q", got)
	}
	if got := Slugify(""); got != fallbackSlug {
		t.Fatalf("expected fallback slug for empty title, got %q", got)
	}
}
