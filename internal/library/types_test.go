package library_test

import (
	"testing"

	"github.com/blackwell-systems/zotmcp/internal/library"
)

func TestResolveItemType(t *testing.T) {
	cases := []struct{ in, want string }{
		{"article", "journalArticle"},
		{"Article", "journalArticle"},
		{"JOURNAL", "journalArticle"},
		{"paper", "journalArticle"},
		{"blog", "blogPost"},
		{"chapter", "bookSection"},
		{"web", "webpage"},
		{"website", "webpage"},
		{"news", "newspaperArticle"},
		{"software", "computerProgram"},
		{"book", "book"},
		// Already-canonical names pass through.
		{"journalArticle", "journalArticle"},
		{"videoRecording", "videoRecording"},
		// Unknown names pass through for the store to validate.
		{"dissertation", "dissertation"},
		{"", ""},
	}
	for _, c := range cases {
		got := library.ResolveItemType(c.in)
		if got != c.want {
			t.Errorf("ResolveItemType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolveItemType_Idempotent(t *testing.T) {
	for _, name := range []string{"article", "blog", "webpage", "unknownType"} {
		once := library.ResolveItemType(name)
		twice := library.ResolveItemType(once)
		if once != twice {
			t.Errorf("ResolveItemType not idempotent for %q: %q then %q", name, once, twice)
		}
	}
}
