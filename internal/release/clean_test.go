package release

import "testing"

func TestClean(t *testing.T) {
	t.Parallel()

	in := ` ### **Bold Headline:** said ""quoted"" text [NEWLINE SEPARATOR] done `
	got := Clean(in)
	want := "Bold  said quoted text  done"
	if got != want {
		t.Fatalf("Clean(%q) = %q, want %q", in, got, want)
	}
}

func TestCleanFoldsUnicodePunctuation(t *testing.T) {
	t.Parallel()

	in := "The bill’s goal – efficiency…"
	got := Clean(in)
	want := "The bill's goal - efficiency..."
	if got != want {
		t.Fatalf("Clean(%q) = %q, want %q", in, got, want)
	}
}

func TestCleanStripsHeadlineLabel(t *testing.T) {
	t.Parallel()

	if got := Clean("Headline: Big News"); got != "Big News" {
		t.Fatalf("unexpected clean result: %q", got)
	}
	if got := Clean("headline: Big News"); got != "Big News" {
		t.Fatalf("unexpected clean result: %q", got)
	}
}
