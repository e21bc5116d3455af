package version

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mapreel/mapreel/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"0.3.1", "0.3.1", 0},
			{"v0.4.0", "0.3.9", 1},
			{"1.0.0", "1.0.10", -1},
			{"1.2", "1.2.0", 0},
			{"1.0.0-rc1", "1.0.0", -1},
			{"1.0.0-rc2", "1.0.0-rc1", 1},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}

		_, err := Compare("latest", "0.1.0")
		So(err, ShouldNotBeNil)

		_, err = Compare("1.2.3.4", "0.1.0")
		So(err, ShouldNotBeNil)
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		filesystem.SetMemMapFs()

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			fmt.Fprint(w, `{"tag_name":"v0.4.2"}`)
		}))
		defer server.Close()

		previous := ReleasesURL
		ReleasesURL = server.URL
		defer func() { ReleasesURL = previous }()

		Convey("The tag is returned without its prefix and cached", func() {
			v, err := Latest(context.Background())
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "0.4.2")

			v, err = Latest(context.Background())
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "0.4.2")
			So(hits.Load(), ShouldEqual, 1)
		})

		Convey("Newer reports a release ahead of the build", func() {
			latest, ok, err := Newer(context.Background())
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "0.4.2")
			So(ok, ShouldBeTrue)
		})
	})
}
