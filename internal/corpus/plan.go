package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Chapter groups reference sections under a theme.
type Chapter struct {
	Title    string   `yaml:"title" json:"title"`
	Sections []string `yaml:"sections" json:"sections"`
}

// Plan orders chapters for a chapter build.
type Plan struct {
	Chapters []Chapter `yaml:"chapters" json:"chapters"`
}

// Validate enforces the structural rules a usable plan must satisfy.
func (p Plan) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Chapters, validation.Required, validation.By(func(any) error {
			for i, chapter := range p.Chapters {
				if strings.TrimSpace(chapter.Title) == "" {
					return validation.NewError("corpus.plan.chapter_title_required", fmt.Sprintf("chapter %d: title is required", i+1))
				}
				if len(chapter.Sections) == 0 {
					return validation.NewError("corpus.plan.chapter_sections_required", fmt.Sprintf("chapter %q: at least one section is required", chapter.Title))
				}
				for _, section := range chapter.Sections {
					if strings.TrimSpace(section) == "" {
						return validation.NewError("corpus.plan.section_title_required", fmt.Sprintf("chapter %q: section titles cannot be blank", chapter.Title))
					}
				}
			}
			return nil
		})),
	)
}

// planSchema is the JSON schema user-supplied plan files are checked against
// before decoding, so malformed plans fail with location-aware messages
// instead of half-built chapters.
var planSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []any{"chapters"},
	"properties": map[string]any{
		"chapters": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []any{"title", "sections"},
				"properties": map[string]any{
					"title": map[string]any{"type": "string", "minLength": 1},
					"sections": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
				},
			},
		},
	},
}

// LoadPlan reads a YAML chapter plan from the provided filesystem, validates
// it against the plan schema, and decodes it.
func LoadPlan(fsys fs.FS, path string) (*Plan, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("corpus: read plan %s: %w", path, err)
	}
	return ParsePlan(data)
}

// ParsePlan validates and decodes YAML plan bytes.
func ParsePlan(data []byte) (*Plan, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("corpus: decode plan: %w", err)
	}

	if err := validatePlanPayload(raw); err != nil {
		return nil, fmt.Errorf("corpus: plan schema: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("corpus: decode plan: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("corpus: plan invalid: %w", err)
	}
	return &plan, nil
}

func validatePlanPayload(payload map[string]any) error {
	compiled, err := compilePlanSchema()
	if err != nil {
		return err
	}
	// Round-trip through JSON so YAML-decoded values use the types the
	// schema library expects.
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return err
	}
	return compiled.Validate(normalized)
}

func compilePlanSchema() (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(planSchema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("plan.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("plan.json")
}

// DefaultPlan reproduces the canonical twelve-chapter grouping of the Zig
// language reference.
func DefaultPlan() *Plan {
	return &Plan{Chapters: []Chapter{
		{Title: "Introduction & Basics", Sections: []string{
			"Introduction", "Zig Standard Library", "Hello World", "Comments", "Values", "Zig Test", "Variables",
		}},
		{Title: "Numbers & Operators", Sections: []string{
			"Integers", "Floats", "Operators",
		}},
		{Title: "Arrays, Pointers & Slices", Sections: []string{
			"Arrays", "Vectors", "Pointers", "Slices",
		}},
		{Title: "User Types", Sections: []string{
			"struct", "enum", "union", "opaque",
		}},
		{Title: "Control Flow", Sections: []string{
			"Blocks", "switch", "while", "for", "if", "defer", "unreachable", "noreturn",
		}},
		{Title: "Functions, Errors & Optionals", Sections: []string{
			"Functions", "Errors", "Optionals", "Casting", "Zero Bit Types",
		}},
		{Title: "Semantics & Compile-Time", Sections: []string{
			"Result Location Semantics", "comptime",
		}},
		{Title: "Low-Level & Concurrency", Sections: []string{
			"Assembly", "Atomics", "Async Functions",
		}},
		{Title: "Builtins", Sections: []string{
			"Builtin Functions",
		}},
		{Title: "Build & Compilation", Sections: []string{
			"Build Mode", "Single Threaded Builds", "Illegal Behavior", "Memory", "Compile Variables", "Compilation Model", "Zig Build System",
		}},
		{Title: "Interop & Targets", Sections: []string{
			"C", "WebAssembly", "Targets",
		}},
		{Title: "Style & Appendix", Sections: []string{
			"Style Guide", "Source Encoding", "Keyword Reference", "Appendix",
		}},
	}}
}
