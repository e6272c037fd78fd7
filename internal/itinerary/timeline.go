package itinerary

import "sort"

// FindPreceding returns the chronologically preceding entry for a candidate
// start time within one day's items, or nil when nothing precedes it.
//
// Transport entries and entries without a start time are excluded so a new
// travel segment never chains off another travel segment. HH:MM strings
// compare lexicographically, which is correct for same-day times.
func FindPreceding(items []*Item, candidateStart string) *Item {
	var candidates []*Item
	for _, item := range items {
		if item.Category == CategoryTransport || item.StartTime == nil {
			continue
		}
		candidates = append(candidates, item)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return *candidates[i].StartTime < *candidates[j].StartTime
	})

	var preceding *Item
	for _, item := range candidates {
		end := item.StartTime
		if item.EndTime != nil {
			end = item.EndTime
		}
		if *end < candidateStart {
			preceding = item
		}
	}
	return preceding
}

// maxOrderIndex returns the highest order index among a day's items, or -1
// when the day is empty.
func maxOrderIndex(items []*Item) int {
	max := -1
	for _, item := range items {
		if item.OrderIndex > max {
			max = item.OrderIndex
		}
	}
	return max
}
