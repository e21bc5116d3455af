package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mapreel/mapreel/config"
	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestAllowList(t *testing.T) {
	Convey("Given the default allow-list", t, func() {
		list, err := ParseAllowList(config.DefaultAllowList)
		So(err, ShouldBeNil)

		Convey("Election articles are allowed", func() {
			So(list.Allowed("https://en.wikipedia.org/wiki/United_States_presidential_election,_1860"), ShouldBeTrue)
		})

		Convey("API queries are allowed with any query string", func() {
			So(list.Allowed("https://en.wikipedia.org/w/api.php?action=query&titles=X&format=json"), ShouldBeTrue)
		})

		Convey("Hosts are compared case-insensitively and with default ports stripped", func() {
			So(list.Allowed("HTTPS://EN.Wikipedia.org:443/w/api.php?action=query"), ShouldBeTrue)
		})

		Convey("Other articles are rejected", func() {
			So(list.Allowed("https://en.wikipedia.org/wiki/Go_(programming_language)"), ShouldBeFalse)
		})

		Convey("Other schemes and hosts are rejected", func() {
			So(list.Allowed("http://en.wikipedia.org/w/api.php"), ShouldBeFalse)
			So(list.Allowed("https://en.wikipedia.org.evil.example/w/api.php"), ShouldBeFalse)
			So(list.Allowed("https://evil.example/https://en.wikipedia.org/w/api.php"), ShouldBeFalse)
		})

		Convey("URLs with credentials are rejected", func() {
			So(list.Allowed("https://user@en.wikipedia.org/w/api.php"), ShouldBeFalse)
		})

		Convey("It remembers its patterns", func() {
			So(list.Patterns(), ShouldResemble, config.DefaultAllowList)
		})
	})

	Convey("Patterns without a wildcard match exactly", t, func() {
		list := MustAllowList("https://example.com/a")
		So(list.Allowed("https://example.com/a"), ShouldBeTrue)
		So(list.Allowed("https://example.com/ab"), ShouldBeFalse)
	})

	Convey("Internationalized hosts are normalized", t, func() {
		list := MustAllowList("https://bücher.example/**")
		So(list.Allowed("https://xn--bcher-kva.example/index.html"), ShouldBeTrue)
	})

	Convey("Patterns without a host are refused", t, func() {
		_, err := ParseAllowList([]string{"/relative/**"})
		So(err, ShouldNotBeNil)
	})

	Convey("A nil or empty list allows nothing", t, func() {
		var list *AllowList
		So(list.Allowed("https://example.com"), ShouldBeFalse)
		So(MustAllowList().Allowed("https://example.com"), ShouldBeFalse)
	})
}

func TestGate(t *testing.T) {
	Convey("Given a server and a gate allowing part of it", t, func() {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			switch r.URL.Path {
			case "/ok/agent":
				fmt.Fprint(w, r.Header.Get("User-Agent"))
			case "/ok/missing":
				w.WriteHeader(http.StatusNotFound)
			default:
				fmt.Fprint(w, "hello")
			}
		}))
		defer server.Close()

		gate := New(MustAllowList(server.URL+"/ok/**"), server.Client())
		ctx := context.Background()

		Convey("Allowed requests reach the server", func() {
			body, err := gate.Fetch(ctx, server.URL+"/ok/hello")
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "hello")
		})

		Convey("The user agent is set", func() {
			body, err := gate.Fetch(ctx, server.URL+"/ok/agent")
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, constant.UserAgent)
		})

		Convey("Rejected requests never hit the network", func() {
			_, err := gate.Fetch(ctx, server.URL+"/private")
			So(errors.Is(err, ErrNotAllowed), ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 0)

			req, _ := http.NewRequest(http.MethodGet, server.URL+"/private", nil)
			_, err = gate.Do(req)
			So(errors.Is(err, ErrNotAllowed), ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 0)
		})

		Convey("Non-2xx responses are errors", func() {
			_, err := gate.Fetch(ctx, server.URL+"/ok/missing")
			var statusErr *StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Default reads the allow-list from the configuration", t, func() {
		viper.Set(key.NetworkAllow, []string{"https://example.com/**"})
		viper.Set(key.NetworkImpersonate, true)
		defer viper.Set(key.NetworkAllow, config.DefaultAllowList)
		defer viper.Set(key.NetworkImpersonate, false)

		gate, err := Default()
		So(err, ShouldBeNil)
		So(gate.Allowed("https://example.com/x"), ShouldBeTrue)
		So(gate.Allowed("https://en.wikipedia.org/w/api.php"), ShouldBeFalse)
		So(gate.doer, ShouldEqual, ImpersonatingClient())
	})
}

func TestImpersonatingClient(t *testing.T) {
	Convey("Plain HTTP requests go through the tuned transport", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "plain")
		}))
		defer server.Close()

		gate := New(MustAllowList(server.URL+"/**"), ImpersonatingClient())
		body, err := gate.Fetch(context.Background(), server.URL+"/")
		So(err, ShouldBeNil)
		So(string(body), ShouldEqual, "plain")
	})
}
