// Package fuzzy merges name variants (accents, case, small typos) that refer to
// the same person when records carry no stable id. It is a best-effort display
// grouping, not an identity system.
package fuzzy

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultThreshold is the minimum similarity for two names to share a cluster.
	DefaultThreshold = 0.86
	// DefaultInitialFallback enables the same-surname + same-first-initial rule
	// for short names that edit distance treats too strictly ("Al Smith" / "Albert Smith").
	DefaultInitialFallback = true
)

// float tolerance so a similarity computed as exactly the threshold still matches
const epsilon = 1e-9

// Options tunes when two partner names are treated as the same person.
type Options struct {
	Threshold       float64
	InitialFallback bool
}

func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, InitialFallback: DefaultInitialFallback}
}

func (o Options) threshold() float64 {
	if o.Threshold <= 0 || o.Threshold > 1 {
		return DefaultThreshold
	}
	return o.Threshold
}

// Normalize strips diacritics, lowercases, turns non-letters into spaces and
// collapses whitespace.
func Normalize(name string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		stripped = name
	}
	stripped = strings.ToLower(stripped)
	stripped = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return ' '
	}, stripped)
	return strings.Join(strings.Fields(stripped), " ")
}

// NameKey is the grouping key for a free-text name.
func NameKey(name string) string {
	return Normalize(name)
}

// TitleCase upper-cases the first letter of every word.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// Levenshtein is the rune-wise edit distance between a and b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Similarity is 1 - distance/maxLen over normalized names, in [0, 1].
func Similarity(a, b string) float64 {
	return similarityNormalized(Normalize(a), Normalize(b))
}

func similarityNormalized(na, nb string) float64 {
	longest := max(len([]rune(na)), len([]rune(nb)), 1)
	return 1 - float64(Levenshtein(na, nb))/float64(longest)
}

// Match reports whether two names belong together under opts.
func Match(a, b string, opts Options) bool {
	return matchNormalized(Normalize(a), Normalize(b), opts)
}

func matchNormalized(na, nb string, opts Options) bool {
	if similarityNormalized(na, nb)+epsilon >= opts.threshold() {
		return true
	}
	return opts.InitialFallback && sameSurnameAndInitial(na, nb)
}

func sameSurnameAndInitial(na, nb string) bool {
	ta, tb := strings.Fields(na), strings.Fields(nb)
	if len(ta) < 2 || len(tb) < 2 {
		return false
	}
	if ta[len(ta)-1] != tb[len(tb)-1] {
		return false
	}
	return []rune(ta[0])[0] == []rune(tb[0])[0]
}

// Cluster is one merged group. Members keep the order they were visited in.
type Cluster[T any] struct {
	Key     string
	Name    string
	Members []T
}

// Group clusters items greedily. Items are visited most recent first (stable
// for ties); the first unclustered item seeds a cluster and every later
// unclustered item matching the seed joins it.
func Group[T any](items []T, name func(T) string, recency func(T) time.Time, opts Options) []Cluster[T] {
	order := make([]int, len(items))
	normalized := make([]string, len(items))
	for i := range items {
		order[i] = i
		normalized[i] = Normalize(name(items[i]))
	}
	if recency != nil {
		sort.SliceStable(order, func(a, b int) bool {
			return recency(items[order[a]]).After(recency(items[order[b]]))
		})
	}

	used := make([]bool, len(items))
	var clusters []Cluster[T]
	for pos, seed := range order {
		if used[seed] {
			continue
		}
		used[seed] = true
		memberIdx := []int{seed}
		for _, cand := range order[pos+1:] {
			if used[cand] {
				continue
			}
			if matchNormalized(normalized[seed], normalized[cand], opts) {
				used[cand] = true
				memberIdx = append(memberIdx, cand)
			}
		}

		c := Cluster[T]{Members: make([]T, 0, len(memberIdx))}
		for _, i := range memberIdx {
			c.Members = append(c.Members, items[i])
		}
		c.Key = representative(memberIdx, normalized, func(i int) string { return name(items[i]) })
		c.Name = TitleCase(c.Key)
		clusters = append(clusters, c)
	}
	return clusters
}

// representative picks the most frequent normalized spelling, breaking ties by
// the longer raw string and then by visit order.
func representative(members []int, normalized []string, raw func(int) string) string {
	type tally struct {
		count  int
		rawLen int
		first  int
	}
	tallies := map[string]*tally{}
	for pos, i := range members {
		n := normalized[i]
		t, ok := tallies[n]
		if !ok {
			t = &tally{first: pos}
			tallies[n] = t
		}
		t.count++
		if l := len([]rune(strings.TrimSpace(raw(i)))); l > t.rawLen {
			t.rawLen = l
		}
	}

	best := ""
	var bestT *tally
	for n, t := range tallies {
		switch {
		case bestT == nil,
			t.count > bestT.count,
			t.count == bestT.count && t.rawLen > bestT.rawLen,
			t.count == bestT.count && t.rawLen == bestT.rawLen && t.first < bestT.first:
			best, bestT = n, t
		}
	}
	return best
}
