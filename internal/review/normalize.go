package review

import "github.com/daytrip-labs/travel-cli/internal/model"

// Normalize deduplicates snippets by exact string equality, keeping
// first-seen order, and truncates the result to max. A max of zero or
// less means unbounded.
func Normalize(snippets []string, max int) model.ReviewSet {
	seen := make(map[string]struct{}, len(snippets))
	out := make(model.ReviewSet, 0, len(snippets))

	for _, s := range snippets {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}
