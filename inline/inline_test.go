package inline

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mapreel/mapreel/config"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/playback"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func setup(t *testing.T) {
	filesystem.SetMemMapFs()
	t.Setenv("MAPREEL_CONFIG_PATH", "/config")
	lo.Must0(config.Setup())
	viper.Set(key.PlaybackPreload, false)
	viper.Set(key.PlaybackRemember, false)
}

func TestParseRange(t *testing.T) {
	bounds := playback.Range{Min: 1, Max: 57}

	Convey("ParseRange", t, func() {
		Convey("Keywords select the bounds", func() {
			So(lo.Must(ParseRange("all", bounds)), ShouldResemble, bounds)
			So(lo.Must(ParseRange("", bounds)), ShouldResemble, bounds)
			So(lo.Must(ParseRange("first", bounds)), ShouldResemble, playback.Range{Min: 1, Max: 1})
			So(lo.Must(ParseRange("last", bounds)), ShouldResemble, playback.Range{Min: 57, Max: 57})
		})

		Convey("Frames and years can be mixed", func() {
			So(lo.Must(ParseRange("5", bounds)), ShouldResemble, playback.Range{Min: 5, Max: 5})
			So(lo.Must(ParseRange("1-5", bounds)), ShouldResemble, playback.Range{Min: 1, Max: 5})
			So(lo.Must(ParseRange("1860-1868", bounds)), ShouldResemble, playback.Range{Min: 19, Max: 21})
			So(lo.Must(ParseRange("2-1800", bounds)), ShouldResemble, playback.Range{Min: 2, Max: 4})
		})

		Convey("Invalid selections are rejected", func() {
			for _, d := range []string{"x", "5-1", "0", "1861", "1-99"} {
				_, err := ParseRange(d, bounds)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given frames without overlay", t, func() {
		setup(t)
		var buf bytes.Buffer

		Convey("Plain output has one line per frame", func() {
			err := Run(context.Background(), &Options{
				Out:   &buf,
				Range: mo.Some(playback.Range{Min: 1, Max: 3}),
			})
			So(err, ShouldBeNil)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(lines, ShouldResemble, []string{
				"1\t1789\tassets/images/choropleth_1.png",
				"2\t1792\tassets/images/choropleth_2.png",
				"3\t1796\tassets/images/choropleth_3.png",
			})
		})

		Convey("Json output is one object per line", func() {
			err := Run(context.Background(), &Options{
				Out:   &buf,
				Json:  true,
				Range: mo.Some(playback.Range{Min: 19, Max: 20}),
			})
			So(err, ShouldBeNil)

			var outputs []Output
			scanner := bufio.NewScanner(&buf)
			for scanner.Scan() {
				var o Output
				So(json.Unmarshal(scanner.Bytes(), &o), ShouldBeNil)
				outputs = append(outputs, o)
			}

			So(outputs, ShouldHaveLength, 2)
			So(outputs[0].Range, ShouldResemble, playback.Range{Min: 19, Max: 20})
			So(outputs[0].Frame.Year, ShouldEqual, 1860)
			So(outputs[1].Frame.Index, ShouldEqual, 20)
			So(outputs[1].Frame.Article, ShouldBeNil)
		})

		Convey("A timer plays the range to its end", func() {
			err := Run(context.Background(), &Options{
				Out:      &buf,
				Range:    mo.Some(playback.Range{Min: 1, Max: 3}),
				Interval: time.Millisecond,
			})
			So(err, ShouldBeNil)
			So(strings.Count(buf.String(), "\n"), ShouldEqual, 3)
		})

		Convey("Cancellation stops the timer", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := Run(ctx, &Options{
				Out:      &buf,
				Range:    mo.Some(playback.Range{Min: 1, Max: 3}),
				Interval: time.Hour,
			})
			So(err, ShouldEqual, context.Canceled)
			So(strings.Count(buf.String(), "\n"), ShouldEqual, 1)
		})
	})
}

// wikiAPI answers the queries of the 1860 overlay. The portrait cannot be resolved.
func wikiAPI() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("prop") == "extracts":
			fmt.Fprint(w, `{"query":{"pages":{"32037":{"pageid":32037,"title":"United States presidential election, 1860","extract":"<p>The <b>1860 election</b> was held on November 6.</p>"}}}}`)
		case q.Get("prop") == "images":
			fmt.Fprint(w, `{"query":{"pages":{"32037":{"pageid":32037,"title":"United States presidential election, 1860","images":[{"ns":6,"title":"File:Map.svg"},{"ns":6,"title":"File:Lincoln.jpg"}]}}}}`)
		case q.Get("prop") == "imageinfo" && q.Get("titles") == "File:Map.svg":
			fmt.Fprint(w, `{"query":{"pages":{"7":{"ns":6,"title":"File:Map.svg","imageinfo":[{"thumburl":"https://upload.wikimedia.org/thumb/Map.svg/100px-Map.svg.png","url":"https://upload.wikimedia.org/Map.svg"}]}}}}`)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
}

func TestRunOverlay(t *testing.T) {
	Convey("Given frames with the overlay", t, func() {
		setup(t)
		server := wikiAPI()
		defer server.Close()

		viper.Set(key.OverlayEndpoint, server.URL+"/w/api.php")
		viper.Set(key.NetworkAllow, []string{server.URL + "/w/api.php**"})

		var buf bytes.Buffer

		Convey("Json output carries the article, images and failed requests", func() {
			err := Run(context.Background(), &Options{
				Out:     &buf,
				Json:    true,
				Overlay: true,
				Range:   mo.Some(playback.Range{Min: 19, Max: 19}),
			})
			So(err, ShouldBeNil)

			var o Output
			So(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &o), ShouldBeNil)
			So(o.Frame.Year, ShouldEqual, 1860)

			So(o.Frame.Article, ShouldNotBeNil)
			So(o.Frame.Article.Title, ShouldEqual, "United States presidential election, 1860")
			So(o.Frame.Article.Extract, ShouldContainSubstring, "1860 election was held on November 6.")
			So(o.Frame.Article.URL, ShouldEndWith, "United_States_presidential_election,_1860")

			So(o.Frame.Images, ShouldResemble, []string{"https://upload.wikimedia.org/Map.svg"})
			So(o.Frame.Errors, ShouldHaveLength, 1)
			So(o.Frame.Errors[0], ShouldContainSubstring, "Lincoln.jpg")
		})

		Convey("A blocked endpoint is reported as a failed request", func() {
			viper.Set(key.NetworkAllow, []string{"https://upload.wikimedia.org/**"})

			err := Run(context.Background(), &Options{
				Out:     &buf,
				Json:    true,
				Overlay: true,
				Range:   mo.Some(playback.Range{Min: 19, Max: 19}),
			})
			So(err, ShouldBeNil)

			var o Output
			So(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &o), ShouldBeNil)
			So(o.Frame.Article, ShouldBeNil)
			So(o.Frame.Images, ShouldBeEmpty)
			So(o.Frame.Errors, ShouldHaveLength, 2)
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("The schema describes frames", t, func() {
		schema := Schema()
		So(schema.Definitions, ShouldContainKey, "Output")
		So(schema.Definitions, ShouldContainKey, "Frame")
		So(schema.Definitions, ShouldContainKey, "playback.Range")

		frame := schema.Definitions["Frame"]
		year, ok := frame.Properties.Get("year")
		So(ok, ShouldBeTrue)
		So(year.Description, ShouldEqual, "Election year shown by the frame.")
	})
}
