package analytics

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Bucket is one category of a breakdown.
type Bucket struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Breakdown counts values per distinct value. Percentages are relative to len(values)
// and rounded independently, so they may not add up to exactly 100.
// Buckets are sorted by decreasing count, ties in French alphabetical order.
func Breakdown(values []string) []Bucket {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	buckets := make([]Bucket, 0, len(counts))
	for name, count := range counts {
		buckets = append(buckets, Bucket{Name: name, Count: count, Percentage: Percent(count, len(values))})
	}

	coll := collate.New(language.French, collate.IgnoreCase)
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return coll.CompareString(buckets[i].Name, buckets[j].Name) < 0
	})
	return buckets
}

// Fixed returns one bucket per name, in the given order, including empty ones.
func Fixed(values []string, names []string) []Bucket {
	counts := make(map[string]int, len(names))
	for _, v := range values {
		counts[v]++
	}
	buckets := make([]Bucket, 0, len(names))
	for _, name := range names {
		buckets = append(buckets, Bucket{Name: name, Count: counts[name], Percentage: Percent(counts[name], len(values))})
	}
	return buckets
}

// Top keeps the first n buckets.
func Top(buckets []Bucket, n int) []Bucket {
	if len(buckets) <= n {
		return buckets
	}
	return buckets[:n]
}
