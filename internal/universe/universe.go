package universe

import (
	"fmt"
	"sort"
	"strings"
)

// Ticker length bounds for this deployment's tracked set.
const (
	MinTickerLen = 3
	MaxTickerLen = 5
)

// Set is the immutable collection of tickers the service refreshes and
// serves. Membership is case-insensitive; the canonical form is
// upper-case. A Set is never mutated after construction, so it is safe
// for concurrent use without locking.
type Set struct {
	members map[string]struct{}
	sorted  []string
}

// New builds a Set from the given symbols. Symbols are normalized to
// canonical form; duplicates collapse. Returns an error when the list
// is empty or any symbol violates the length bounds.
func New(tickers []string) (*Set, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("tracked set cannot be empty")
	}

	members := make(map[string]struct{}, len(tickers))
	for _, t := range tickers {
		canon := Normalize(t)
		if len(canon) < MinTickerLen || len(canon) > MaxTickerLen {
			return nil, fmt.Errorf("ticker %q: length must be %d-%d characters", t, MinTickerLen, MaxTickerLen)
		}
		members[canon] = struct{}{}
	}

	sorted := make([]string, 0, len(members))
	for t := range members {
		sorted = append(sorted, t)
	}
	sort.Strings(sorted)

	return &Set{members: members, sorted: sorted}, nil
}

// Normalize converts a symbol to its canonical form.
func Normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Contains reports whether the (case-insensitive) symbol is tracked.
func (s *Set) Contains(ticker string) bool {
	_, ok := s.members[Normalize(ticker)]
	return ok
}

// List returns the canonical tickers in sorted order.
func (s *Set) List() []string {
	out := make([]string, len(s.sorted))
	copy(out, s.sorted)
	return out
}

// Len returns the number of tracked tickers.
func (s *Set) Len() int {
	return len(s.members)
}
