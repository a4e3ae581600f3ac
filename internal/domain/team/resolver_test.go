package team

import "testing"

func TestResolver_ExactAliasLookup(t *testing.T) {
	r := NewResolver(ResolverConfig{})

	cases := map[string]Identity{
		"CSK":             ChennaiSuperKings,
		"csk":             ChennaiSuperKings,
		" MI ":            MumbaiIndians,
		"Kings XI Punjab": PunjabKings,
		"Delhi Daredevils": DelhiCapitals,
		"Sunrisers Hyd":   SunrisersHyderabad,
	}
	for label, want := range cases {
		got, ok := r.Resolve(label)
		if !ok {
			t.Fatalf("Resolve(%q) not resolved", label)
		}
		if got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestResolver_FuzzyMatchesReorderedName(t *testing.T) {
	r := NewResolver(ResolverConfig{})

	got, ok := r.Resolve("Bangalore Royal Challengers")
	if !ok {
		t.Fatalf("expected fuzzy match to resolve")
	}
	if got != RoyalChallengersBengaluru {
		t.Fatalf("Resolve = %q, want %q", got, RoyalChallengersBengaluru)
	}
}

func TestResolver_UnresolvedLabelPassesThrough(t *testing.T) {
	r := NewResolver(ResolverConfig{})

	got, ok := r.Resolve("Trivandrum Tuskers")
	if ok {
		t.Fatalf("expected unknown label to stay unresolved")
	}
	if got != "Trivandrum Tuskers" {
		t.Fatalf("unresolved label must pass through unchanged, got %q", got)
	}
}

func TestResolver_EmptyInputReturnsItself(t *testing.T) {
	r := NewResolver(ResolverConfig{})

	got, ok := r.Resolve("   ")
	if ok {
		t.Fatalf("blank input must not resolve")
	}
	if got != "   " {
		t.Fatalf("blank input must be returned unchanged, got %q", got)
	}
}

func TestTokenSortRatio_OrderInsensitive(t *testing.T) {
	if got := tokenSortRatio("Royal Challengers Bengaluru", "Bengaluru Royal Challengers"); got != 100 {
		t.Fatalf("reordered tokens should score 100, got %d", got)
	}
	if got := tokenSortRatio("Chennai Super Kings", "Chennai Super Kings"); got != 100 {
		t.Fatalf("identical strings should score 100, got %d", got)
	}
}
