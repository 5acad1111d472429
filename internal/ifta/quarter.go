package ifta

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Quarter is a calendar quarter like 2026Q1.
type Quarter struct {
	Year int
	Q    int
}

// ParseQuarter parses "2026Q1" (case-insensitive).
func ParseQuarter(s string) (Quarter, error) {
	parts := strings.SplitN(strings.ToUpper(strings.TrimSpace(s)), "Q", 2)
	if len(parts) != 2 {
		return Quarter{}, fmt.Errorf("invalid quarter %q, want e.g. 2026Q1", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 2000 || year > 2100 {
		return Quarter{}, fmt.Errorf("invalid quarter year in %q", s)
	}
	q, err := strconv.Atoi(parts[1])
	if err != nil || q < 1 || q > 4 {
		return Quarter{}, fmt.Errorf("invalid quarter number in %q", s)
	}
	return Quarter{Year: year, Q: q}, nil
}

// String formats the quarter back to "2026Q1".
func (q Quarter) String() string {
	return fmt.Sprintf("%dQ%d", q.Year, q.Q)
}

// Dates returns the inclusive YYYY-MM-DD bounds of the quarter.
func (q Quarter) Dates() (from, to string) {
	start := time.Date(q.Year, time.Month((q.Q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}
