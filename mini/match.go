package mini

import (
	"sort"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// frameItem is a selectable frame.
type frameItem struct {
	index int
	label string
}

func (f frameItem) String() string {
	return f.label
}

// matchFrames ranks the frames whose label fuzzily matches query. An empty query matches nothing.
func matchFrames(query string, labels map[int]string) []frameItem {
	if query == "" {
		return nil
	}

	indices := make([]int, 0, len(labels))
	targets := make([]string, 0, len(labels))
	for index := range labels {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	for _, index := range indices {
		targets = append(targets, labels[index])
	}

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)

	items := make([]frameItem, len(ranks))
	for i, r := range ranks {
		items[i] = frameItem{index: indices[r.OriginalIndex], label: r.Target}
	}

	// an exact frame number goes first
	if n, err := strconv.Atoi(query); err == nil {
		if label, ok := labels[n]; ok {
			items = append([]frameItem{{index: n, label: label}}, without(items, n)...)
		}
	}

	return items
}

func without(items []frameItem, index int) []frameItem {
	out := items[:0:0]
	for _, item := range items {
		if item.index != index {
			out = append(out, item)
		}
	}
	return out
}
