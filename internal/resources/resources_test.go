package resources

import "testing"

func TestLookupKnownTopic(t *testing.T) {
	lib, err := NewLibrary()
	if err != nil {
		t.Fatalf("NewLibrary returned error: %v", err)
	}

	links := lib.Lookup("db_sql_basics")
	if len(links) == 0 {
		t.Fatalf("expected links for db_sql_basics")
	}
	if links[0] != "https://sqlbolt.com/" {
		t.Fatalf("unexpected first link: %q", links[0])
	}
}

func TestLookupUnknownTopicFallsBack(t *testing.T) {
	lib, err := NewLibrary()
	if err != nil {
		t.Fatalf("NewLibrary returned error: %v", err)
	}

	links := lib.Lookup("quantum_computing")
	if len(links) != 1 || links[0] != "https://roadmap.sh/" {
		t.Fatalf("expected generic fallback, got %v", links)
	}
}

func TestLookupCachesResults(t *testing.T) {
	lib, err := NewLibrary()
	if err != nil {
		t.Fatalf("NewLibrary returned error: %v", err)
	}

	first := lib.Lookup("git_basics")
	if _, ok := lib.cache.Get("git_basics"); !ok {
		t.Fatalf("expected git_basics to be cached after lookup")
	}
	second := lib.Lookup("git_basics")
	if len(first) != len(second) {
		t.Fatalf("cached lookup diverged: %v vs %v", first, second)
	}
}
