package corpus

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestDefaultPlanIsValid(t *testing.T) {
	plan := DefaultPlan()
	if err := plan.Validate(); err != nil {
		t.Fatalf("default plan invalid: %v", err)
	}
	if len(plan.Chapters) != 12 {
		t.Fatalf("expected 12 chapters, got %d", len(plan.Chapters))
	}
	if plan.Chapters[0].Title != "Introduction & Basics" {
		t.Fatalf("unexpected first chapter: %q", plan.Chapters[0].Title)
	}
}

func TestParsePlan(t *testing.T) {
	data := []byte(`chapters:
  - title: Basics
    sections:
      - Introduction
      - Values
  - title: Types
    sections:
      - struct
`)

	plan, err := ParsePlan(data)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if len(plan.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(plan.Chapters))
	}
	if plan.Chapters[0].Sections[1] != "Values" {
		t.Fatalf("unexpected sections: %#v", plan.Chapters[0].Sections)
	}
}

func TestParsePlanRejectsUnknownKeys(t *testing.T) {
	data := []byte(`chapters:
  - title: Basics
    sections: [Introduction]
    extra: nope
`)

	if _, err := ParsePlan(data); err == nil {
		t.Fatal("expected schema error for unknown key")
	}
}

func TestParsePlanRejectsEmptySections(t *testing.T) {
	data := []byte(`chapters:
  - title: Basics
    sections: []
`)

	_, err := ParsePlan(data)
	if err == nil {
		t.Fatal("expected schema error for empty sections")
	}
	if !strings.Contains(err.Error(), "schema") {
		t.Fatalf("expected schema failure, got %v", err)
	}
}

func TestParsePlanRejectsMissingChapters(t *testing.T) {
	if _, err := ParsePlan([]byte("{}")); err == nil {
		t.Fatal("expected schema error for missing chapters")
	}
}

func TestParsePlanRejectsInvalidYAML(t *testing.T) {
	if _, err := ParsePlan([]byte("chapters: [unclosed")); err == nil {
		t.Fatal("expected YAML decode error")
	}
}

func TestLoadPlan(t *testing.T) {
	fsys := fstest.MapFS{
		"plan.yaml": &fstest.MapFile{Data: []byte(`chapters:
  - title: Basics
    sections: [Introduction]
`)},
	}

	plan, err := LoadPlan(fsys, "plan.yaml")
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}
	if len(plan.Chapters) != 1 || plan.Chapters[0].Title != "Basics" {
		t.Fatalf("unexpected plan: %#v", plan)
	}
}

func TestLoadPlanMissingFile(t *testing.T) {
	if _, err := LoadPlan(fstest.MapFS{}, "plan.yaml"); err == nil {
		t.Fatal("expected read error")
	}
}

func TestPlanValidateRejectsBlankTitles(t *testing.T) {
	plan := Plan{Chapters: []Chapter{{Title: "  ", Sections: []string{"Introduction"}}}}
	if err := plan.Validate(); err == nil {
		t.Fatal("expected validation error for blank title")
	}

	plan = Plan{Chapters: []Chapter{{Title: "Basics", Sections: []string{" "}}}}
	if err := plan.Validate(); err == nil {
		t.Fatal("expected validation error for blank section title")
	}
}
