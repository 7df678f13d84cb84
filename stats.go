package cssprefix

import "sort"

// PropertyCount records how many files had a property expanded.
type PropertyCount struct {
	Property string `json:"property"`
	Files    int    `json:"files"`
}

// propertyCounts tallies expanded properties across changes, most frequent
// first and alphabetical within equal counts.
func propertyCounts(changes []FileChange) []PropertyCount {
	tally := make(map[string]int)
	for _, change := range changes {
		for _, prop := range change.Properties {
			tally[prop]++
		}
	}

	counts := make([]PropertyCount, 0, len(tally))
	for prop, n := range tally {
		counts = append(counts, PropertyCount{Property: prop, Files: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Files != counts[j].Files {
			return counts[i].Files > counts[j].Files
		}
		return counts[i].Property < counts[j].Property
	})
	return counts
}
