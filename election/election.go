// Package election maps frame indices to US presidential election years and their encyclopedia articles.
package election

import "fmt"

const (
	// FirstYear is the year of the first presidential election.
	FirstYear = 1789

	// cycleBase anchors the regular four-year cycle that starts with the 1792 election.
	cycleBase = 1788

	// Cycle is the number of years between two regular elections.
	Cycle = 4
)

// ArticleBase is the address of the English Wikipedia article namespace.
const ArticleBase = "https://en.wikipedia.org/wiki/"

// Year returns the election year shown by the frame at index.
// Index 1 is the irregular 1788-89 election; every later index follows the four-year cycle from 1792.
func Year(index int) int {
	if index == 1 {
		return FirstYear
	}
	return (index-1)*Cycle + cycleBase
}

// Index returns the frame index of an election year.
func Index(year int) (int, bool) {
	if year == FirstYear {
		return 1, true
	}
	if year <= cycleBase || (year-cycleBase)%Cycle != 0 {
		return 0, false
	}
	return (year-cycleBase)/Cycle + 1, true
}

// ArticleTitle returns the Wikipedia title of the article about the election held in year.
func ArticleTitle(year int) string {
	return fmt.Sprintf("United_States_presidential_election,_%d", year)
}

// ArticleURL returns the public address of the article about the election held in year.
func ArticleURL(year int) string {
	return ArticleBase + ArticleTitle(year)
}
