package corpus

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-refsplit/pkg/interfaces"
)

const (
	// ManifestFileName is written at the corpus root next to the indexes.
	ManifestFileName    = ".refsplit-manifest.json"
	manifestFileVersion = 1
)

// Manifest stores metadata about the last successful build so repeated runs
// can skip unchanged outputs and the validator can detect drifted artifacts
// without re-deriving every excerpt.
type Manifest struct {
	Version     int                        `json:"version"`
	BuildID     string                     `json:"build_id,omitempty"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Artifacts   map[string]ManifestEntry   `json:"-"`
	Metadata    map[string]json.RawMessage `json:"metadata,omitempty"`
}

// ManifestEntry records one produced file keyed by its corpus-relative path.
type ManifestEntry struct {
	Path      string                  `json:"path"`
	Kind      interfaces.ArtifactKind `json:"kind"`
	Title     string                  `json:"title,omitempty"`
	Checksum  string                  `json:"checksum"`
	Size      int64                   `json:"size"`
	WrittenAt time.Time               `json:"written_at"`
}

// NewManifest returns an empty manifest stamped with a fresh build ID.
func NewManifest() *Manifest {
	return &Manifest{
		Version:   manifestFileVersion,
		BuildID:   uuid.NewString(),
		Artifacts: map[string]ManifestEntry{},
		Metadata:  map[string]json.RawMessage{},
	}
}

// LoadManifest reads the manifest from the corpus filesystem. A missing or
// empty manifest yields a fresh one so first runs need no special casing.
func LoadManifest(fsys fs.FS) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, ManifestFileName)
	if err != nil {
		return NewManifest(), nil
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest bytes, tolerating empty input.
func ParseManifest(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return NewManifest(), nil
	}
	var encoded encodedManifest
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, fmt.Errorf("corpus: parse manifest: %w", err)
	}
	manifest := &Manifest{
		Version:     encoded.Version,
		BuildID:     encoded.BuildID,
		GeneratedAt: encoded.GeneratedAt,
		Artifacts:   map[string]ManifestEntry{},
		Metadata:    encoded.Metadata,
	}
	for _, entry := range encoded.Artifacts {
		manifest.Artifacts[entry.Path] = entry
	}
	if manifest.Version == 0 {
		manifest.Version = manifestFileVersion
	}
	if manifest.Metadata == nil {
		manifest.Metadata = map[string]json.RawMessage{}
	}
	return manifest, nil
}

// Record upserts an artifact entry.
func (m *Manifest) Record(record interfaces.ArtifactRecord, at time.Time) {
	if m == nil || record.Path == "" {
		return
	}
	if m.Artifacts == nil {
		m.Artifacts = map[string]ManifestEntry{}
	}
	m.Artifacts[record.Path] = ManifestEntry{
		Path:      record.Path,
		Kind:      record.Kind,
		Title:     record.Title,
		Checksum:  record.Checksum,
		Size:      record.Size,
		WrittenAt: at,
	}
}

// Unchanged reports whether the manifest already holds an entry for path with
// the same checksum.
func (m *Manifest) Unchanged(path, checksum string) bool {
	if m == nil || checksum == "" {
		return false
	}
	entry, ok := m.Artifacts[path]
	return ok && entry.Checksum == checksum
}

// Marshal renders the manifest as deterministic, indented JSON with artifact
// entries sorted by path.
func (m *Manifest) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	encoded := encodedManifest{
		Version:     m.Version,
		BuildID:     m.BuildID,
		GeneratedAt: m.GeneratedAt,
		Metadata:    m.Metadata,
	}
	if encoded.Version == 0 {
		encoded.Version = manifestFileVersion
	}
	if len(m.Artifacts) > 0 {
		encoded.Artifacts = make([]ManifestEntry, 0, len(m.Artifacts))
		for _, entry := range m.Artifacts {
			encoded.Artifacts = append(encoded.Artifacts, entry)
		}
		sort.Slice(encoded.Artifacts, func(i, j int) bool {
			return encoded.Artifacts[i].Path < encoded.Artifacts[j].Path
		})
	}
	return json.MarshalIndent(encoded, "", "  ")
}

type encodedManifest struct {
	Version     int                        `json:"version"`
	BuildID     string                     `json:"build_id,omitempty"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Artifacts   []ManifestEntry            `json:"artifacts,omitempty"`
	Metadata    map[string]json.RawMessage `json:"metadata,omitempty"`
}
