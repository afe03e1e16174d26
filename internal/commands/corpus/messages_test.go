package corpuscmd

import "testing"

func TestSplitCommandType(t *testing.T) {
	if got := (SplitCommand{}).Type(); got != "refsplit.corpus.split" {
		t.Fatalf("unexpected message type %q", got)
	}
	if got := (BuildChaptersCommand{}).Type(); got != "refsplit.corpus.build_chapters" {
		t.Fatalf("unexpected message type %q", got)
	}
	if got := (ValidateCommand{}).Type(); got != "refsplit.corpus.validate" {
		t.Fatalf("unexpected message type %q", got)
	}
}

func TestSplitCommandValidateRequiresReference(t *testing.T) {
	cmd := SplitCommand{}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when reference missing")
	}

	cmd.Reference = "   "
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when reference blank")
	}

	cmd.Reference = "zig-0.15.1.md"
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error when reference provided: %v", err)
	}
}

func TestBuildChaptersCommandValidateRequiresReference(t *testing.T) {
	cmd := BuildChaptersCommand{}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when reference missing")
	}

	cmd.Reference = "zig-0.15.1.md"
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error when reference provided: %v", err)
	}
}

func TestBuildChaptersCommandValidateRejectsNegativeBudget(t *testing.T) {
	cmd := BuildChaptersCommand{
		Reference:    "zig-0.15.1.md",
		MaxPartBytes: -1,
	}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when budget negative")
	}

	cmd.MaxPartBytes = 100_000
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error with positive budget: %v", err)
	}
}

func TestValidateCommandValidateRequiresReference(t *testing.T) {
	cmd := ValidateCommand{}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when reference missing")
	}

	cmd.Reference = "zig-0.15.1.md"
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error when reference provided: %v", err)
	}
}
