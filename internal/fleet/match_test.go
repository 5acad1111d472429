package fleet

import "testing"

func testDrivers() []Driver {
	return []Driver{
		{ID: 1, Username: "IGRAU", OnTimeRate: 0.97, Status: "available"},
		{ID: 2, Username: "JTORO", OnTimeRate: 0.93, Status: "available"},
		{ID: 3, Username: "MWILSON", OnTimeRate: 0.98, Status: "available"},
		{ID: 4, Username: "JRINALDI", OnTimeRate: 0.96, Status: "available"},
		{ID: 5, Username: "JABIAS", OnTimeRate: 0.91, Status: "available"},
		{ID: 6, Username: "DVARGAS", OnTimeRate: 0.97, Status: "available"},
		{ID: 7, Username: "ISANCHEZ", OnTimeRate: 0.95, Status: "available"},
	}
}

func TestMatcherRank(t *testing.T) {
	m := NewMatcher(1)
	matches := m.Rank(testDrivers())

	if len(matches) != MaxMatches {
		t.Fatalf("got %d matches, want %d", len(matches), MaxMatches)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].MatchScore > matches[i-1].MatchScore {
			t.Errorf("matches not sorted: %v > %v at %d", matches[i].MatchScore, matches[i-1].MatchScore, i)
		}
	}
	for _, mt := range matches {
		if mt.MatchScore < 0.88*0.88 || mt.MatchScore > 1.0 {
			t.Errorf("score %v outside jitter bounds", mt.MatchScore)
		}
		if mt.MatchType == "" || mt.ETAToPickup == "" {
			t.Errorf("match %s missing type or ETA", mt.Username)
		}
	}
}

func TestMatcherRankFewDrivers(t *testing.T) {
	m := NewMatcher(7)
	matches := m.Rank(testDrivers()[:2])
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
}

func TestMatcherRankEmpty(t *testing.T) {
	m := NewMatcher(7)
	if got := m.Rank(nil); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestMatcherDeterministicWithSeed(t *testing.T) {
	a := NewMatcher(42).Rank(testDrivers())
	b := NewMatcher(42).Rank(testDrivers())
	for i := range a {
		if a[i].MatchScore != b[i].MatchScore || a[i].ID != b[i].ID {
			t.Fatalf("same seed produced different rankings at %d", i)
		}
	}
}

func TestAssignmentScoreBounds(t *testing.T) {
	m := NewMatcher(99)
	for i := 0; i < 100; i++ {
		s := m.AssignmentScore()
		if s < 0.80 || s > 0.99 {
			t.Fatalf("assignment score %v out of [0.80, 0.99]", s)
		}
	}
}

func TestPickMatchType(t *testing.T) {
	m := NewMatcher(3)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		mt := m.PickMatchType()
		seen[mt] = true
		found := false
		for _, known := range MatchTypes {
			if mt == known {
				found = true
			}
		}
		if !found {
			t.Fatalf("unknown match type %q", mt)
		}
	}
	if len(seen) < 2 {
		t.Errorf("expected variety of match types, saw %d", len(seen))
	}
}
