package query

import (
	"testing"

	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestQuery(t *testing.T) {
	Convey("Given an empty query history", t, func() {
		filesystem.SetMemMapFs()
		t.Setenv("MAPREEL_CONFIG_PATH", "/config")
		viper.Set(key.MiniQuerySuggestions, true)

		So(SuggestMany(""), ShouldBeEmpty)
		So(Suggest("18").IsAbsent(), ShouldBeTrue)

		Convey("When remembering queries", func() {
			So(Remember("1860", 1), ShouldBeNil)
			So(Remember("1864", 10), ShouldBeNil)
			So(Remember("2000", 1), ShouldBeNil)

			Convey("Then suggestions are sorted by rank", func() {
				So(SuggestMany("186"), ShouldResemble, []string{"1864", "1860"})
				So(Suggest("18").MustGet(), ShouldEqual, "1864")
			})

			Convey("Then ranks accumulate", func() {
				So(Remember(" 1860 ", 20), ShouldBeNil)
				So(SuggestMany("186")[0], ShouldEqual, "1860")
			})

			Convey("Then nothing is suggested when disabled", func() {
				viper.Set(key.MiniQuerySuggestions, false)
				So(SuggestMany("186"), ShouldBeEmpty)
			})
		})

		Convey("Blank queries are not remembered", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(SuggestMany(""), ShouldBeEmpty)
		})

		Convey("It sanitizes input", func() {
			So(sanitize("  LINCOLN  "), ShouldEqual, "lincoln")
		})
	})
}
