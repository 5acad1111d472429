package fleet

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// MatchTypes are the dispatch strategies cycled through when ranking drivers.
var MatchTypes = []string{"SOURCE LOAD", "4 LOAD TOUR", "1HR TO SOURCE", "SOURCE TOUR"}

// MaxMatches caps how many ranked drivers a match request returns.
const MaxMatches = 5

// DriverMatch is one ranked candidate for a load.
type DriverMatch struct {
	Driver
	MatchScore  float64 `json:"match_score"`
	MatchType   string  `json:"match_type"`
	ETAToPickup string  `json:"eta_to_pickup"`
}

// Matcher ranks available drivers for a load. Scores are the driver's on-time
// rate with a jitter factor in [0.88, 1.0]; the rand source is owned by the
// matcher so tests can seed it.
type Matcher struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMatcher returns a matcher seeded from seed.
func NewMatcher(seed int64) *Matcher {
	return &Matcher{rng: rand.New(rand.NewSource(seed))}
}

// Rank scores the given drivers for a load and returns up to MaxMatches
// candidates, best first. Drivers are expected to be pre-filtered to
// status=available.
func (m *Matcher) Rank(drivers []Driver) []DriverMatch {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Highest on-time rate first, so the jitter reorders only near-peers.
	sorted := make([]Driver, len(drivers))
	copy(sorted, drivers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OnTimeRate > sorted[j].OnTimeRate
	})
	if len(sorted) > MaxMatches {
		sorted = sorted[:MaxMatches]
	}

	matches := make([]DriverMatch, 0, len(sorted))
	for i, d := range sorted {
		score := Round2(d.OnTimeRate * (0.88 + m.rng.Float64()*0.12))
		matches = append(matches, DriverMatch{
			Driver:      d,
			MatchScore:  score,
			MatchType:   MatchTypes[i%len(MatchTypes)],
			ETAToPickup: fmt.Sprintf("%dh %dm", 1+m.rng.Intn(8), m.rng.Intn(60)),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	return matches
}

// AssignmentScore produces the stored match score for a direct assignment,
// uniform in [0.80, 0.99].
func (m *Matcher) AssignmentScore() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Round2(0.80 + m.rng.Float64()*0.19)
}

// PickMatchType chooses a dispatch strategy for a direct assignment when the
// caller did not name one.
func (m *Matcher) PickMatchType() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MatchTypes[m.rng.Intn(len(MatchTypes))]
}
