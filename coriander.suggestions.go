package coriander

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FindSimilarNames returns up to maxSuggestions candidates close to target,
// closest first. A candidate qualifies when target is a case-insensitive
// subsequence of it, or when their edit distance is small.
func FindSimilarNames(target string, candidates []string, maxSuggestions int) []string {
	if len(candidates) == 0 || maxSuggestions <= 0 {
		return nil
	}

	best := make(map[string]int)
	for _, rank := range fuzzy.RankFindFold(target, candidates) {
		best[rank.Target] = rank.Distance
	}

	maxDistance := len(target) / 2
	if maxDistance < 2 {
		maxDistance = 2
	}
	targetLower := strings.ToLower(target)
	for _, candidate := range candidates {
		dist := fuzzy.LevenshteinDistance(targetLower, strings.ToLower(candidate))
		if dist > maxDistance {
			continue
		}
		if current, ok := best[candidate]; !ok || dist < current {
			best[candidate] = dist
		}
	}

	names := make([]string, 0, len(best))
	for name := range best {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if best[names[i]] != best[names[j]] {
			return best[names[i]] < best[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > maxSuggestions {
		names = names[:maxSuggestions]
	}
	return names
}
