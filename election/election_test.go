package election

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestYear(t *testing.T) {
	Convey("Year", t, func() {
		So(Year(1), ShouldEqual, 1789)
		So(Year(2), ShouldEqual, 1792)
		So(Year(3), ShouldEqual, 1796)
		So(Year(57), ShouldEqual, 2012)
	})
}

func TestIndex(t *testing.T) {
	Convey("Index", t, func() {
		Convey("Is the inverse of Year", func() {
			for i := 1; i <= 57; i++ {
				idx, ok := Index(Year(i))
				So(ok, ShouldBeTrue)
				So(idx, ShouldEqual, i)
			}
		})

		Convey("Rejects years without an election", func() {
			for _, year := range []int{1700, 1788, 1790, 1797, 2015} {
				_, ok := Index(year)
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestArticle(t *testing.T) {
	Convey("ArticleTitle and ArticleURL", t, func() {
		So(ArticleTitle(1860), ShouldEqual, "United_States_presidential_election,_1860")
		So(ArticleURL(1860), ShouldEqual, "https://en.wikipedia.org/wiki/United_States_presidential_election,_1860")
	})
}
