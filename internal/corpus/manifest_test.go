package corpus

import (
	"bytes"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

func TestNewManifestAssignsBuildID(t *testing.T) {
	m := NewManifest()
	if m.Version != manifestFileVersion {
		t.Fatalf("expected version %d, got %d", manifestFileVersion, m.Version)
	}
	if m.BuildID == "" {
		t.Fatal("expected build ID to be assigned")
	}
}

func TestLoadManifestMissingYieldsFresh(t *testing.T) {
	m, err := LoadManifest(fstest.MapFS{})
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Artifacts) != 0 {
		t.Fatalf("expected empty manifest, got %d artifacts", len(m.Artifacts))
	}
}

func TestManifestRecordAndUnchanged(t *testing.T) {
	m := NewManifest()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	m.Record(interfaces.ArtifactRecord{
		Path:     "01-introduction.md",
		Kind:     interfaces.ArtifactSection,
		Title:    "Introduction",
		Checksum: "abc123",
		Size:     42,
	}, now)

	if !m.Unchanged("01-introduction.md", "abc123") {
		t.Fatal("expected recorded artifact to be unchanged")
	}
	if m.Unchanged("01-introduction.md", "different") {
		t.Fatal("expected checksum mismatch to report changed")
	}
	if m.Unchanged("02-values.md", "abc123") {
		t.Fatal("expected unknown path to report changed")
	}
	if m.Unchanged("01-introduction.md", "") {
		t.Fatal("expected empty checksum to report changed")
	}
}

func TestManifestMarshalIsDeterministic(t *testing.T) {
	build := func() *Manifest {
		m := NewManifest()
		m.BuildID = "fixed"
		m.GeneratedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		at := m.GeneratedAt
		m.Record(interfaces.ArtifactRecord{Path: "02-values.md", Kind: interfaces.ArtifactSection, Checksum: "b"}, at)
		m.Record(interfaces.ArtifactRecord{Path: "01-introduction.md", Kind: interfaces.ArtifactSection, Checksum: "a"}, at)
		m.Record(interfaces.ArtifactRecord{Path: "README.md", Kind: interfaces.ArtifactIndex, Checksum: "c"}, at)
		return m
	}

	first, err := build().Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := build().Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected deterministic output\nfirst:  %s\nsecond: %s", first, second)
	}

	idx := bytes.Index(first, []byte("01-introduction.md"))
	if idx < 0 || bytes.Index(first, []byte("02-values.md")) < idx {
		t.Fatalf("expected artifacts sorted by path:\n%s", first)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	m := NewManifest()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.GeneratedAt = now
	m.Record(interfaces.ArtifactRecord{Path: "01-introduction.md", Kind: interfaces.ArtifactSection, Checksum: "a", Size: 10}, now)

	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	parsed, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if parsed.BuildID != m.BuildID {
		t.Fatalf("expected build ID %q, got %q", m.BuildID, parsed.BuildID)
	}
	entry, ok := parsed.Artifacts["01-introduction.md"]
	if !ok {
		t.Fatal("expected artifact entry to survive the round trip")
	}
	if entry.Checksum != "a" || entry.Size != 10 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestParseManifestRejectsGarbage(t *testing.T) {
	if _, err := ParseManifest([]byte("{not json")); err == nil {
		t.Fatal("expected parse error")
	}
}
