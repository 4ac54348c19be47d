package nav

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyRootUsesNavToken(t *testing.T) {
	t.Parallel()

	if got := Classify("/"); got != TokenNav {
		t.Fatalf("Classify(/) = %v, want %v", got, TokenNav)
	}
}

func TestClassifyNonRootUsesActiveToken(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/about", "", "//", "/about/", "/?q=1", "/nested/path", " /"} {
		if got := Classify(path); got != TokenActive {
			t.Fatalf("Classify(%q) = %v, want %v", path, got, TokenActive)
		}
	}
}

func TestTokenClassNames(t *testing.T) {
	t.Parallel()

	if got := TokenNav.ClassName(); got != "nav" {
		t.Fatalf("TokenNav.ClassName() = %q, want %q", got, "nav")
	}
	if got := TokenActive.ClassName(); got != "active" {
		t.Fatalf("TokenActive.ClassName() = %q, want %q", got, "active")
	}
	if got := StyleToken(42).ClassName(); got != "" {
		t.Fatalf("unknown token ClassName() = %q, want empty", got)
	}
}

func TestButtonClassCombinesBothTokens(t *testing.T) {
	t.Parallel()

	if got := ButtonClass(); got != "nav active" {
		t.Fatalf("ButtonClass() = %q, want %q", got, "nav active")
	}
	if diff := cmp.Diff([]StyleToken{TokenNav, TokenActive}, ButtonTokens()); diff != "" {
		t.Fatalf("ButtonTokens() mismatch (-want +got):\n%s", diff)
	}
}

func TestEntriesTargetHomeAndAbout(t *testing.T) {
	t.Parallel()

	want := []Entry{
		{Label: "Home", Path: "/"},
		{Label: "About", Path: "/about"},
	}
	if diff := cmp.Diff(want, Entries()); diff != "" {
		t.Fatalf("Entries() mismatch (-want +got):\n%s", diff)
	}
}
