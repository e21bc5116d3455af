package frame

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/where"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func writeScript(path, body string) {
	So(filesystem.API().MkdirAll(filepath.Dir(path), 0o755), ShouldBeNil)
	So(filesystem.API().WriteFile(path, []byte(body), 0o644), ShouldBeNil)
}

func TestTextTemplate(t *testing.T) {
	Convey("Given the default frame template", t, func() {
		tmpl, err := NewTextTemplate(constant.DefaultFrameTemplate)
		So(err, ShouldBeNil)

		Convey("It renders the bundled asset path", func() {
			url, err := tmpl.Render(12)
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "assets/images/choropleth_12.png")
		})

		Convey("It is a pure function of the index", func() {
			for i := 1; i <= 57; i++ {
				a, _ := tmpl.Render(i)
				b, _ := tmpl.Render(i)
				So(a, ShouldEqual, b)
			}
		})
	})

	Convey("Given a template using the year", t, func() {
		tmpl, err := NewTextTemplate("https://maps.example.org/{{ .Year }}.png")
		So(err, ShouldBeNil)

		url, err := tmpl.Render(1)
		So(err, ShouldBeNil)
		So(url, ShouldEqual, "https://maps.example.org/1789.png")
		So(Label(tmpl, 2), ShouldEqual, "1792")
	})

	Convey("Given a template with an unknown field", t, func() {
		tmpl, err := NewTextTemplate("{{ .Page }}")
		So(err, ShouldBeNil)

		_, err = tmpl.Render(1)
		So(err, ShouldNotBeNil)
	})

	Convey("Given a malformed template", t, func() {
		_, err := NewTextTemplate("{{ .Index")
		So(err, ShouldNotBeNil)
	})
}

func TestLuaTemplate(t *testing.T) {
	Convey("Given a script defining both entry points", t, func() {
		path := "/scripts/decades.lua"
		writeScript(path, `
function FrameURL(index)
	return "frames/" .. (index * 10) .. ".png"
end

function FrameLabel(index)
	return "frame " .. index
end
`)
		tmpl, err := NewLuaTemplate(path)
		So(err, ShouldBeNil)
		defer tmpl.Close()

		So(tmpl.Name(), ShouldEqual, "decades")

		url, err := tmpl.Render(3)
		So(err, ShouldBeNil)
		So(url, ShouldEqual, "frames/30.png")
		So(Label(tmpl, 3), ShouldEqual, "frame 3")
	})

	Convey("Given a script whose FrameURL is not deterministic", t, func() {
		path := "/scripts/counter.lua"
		writeScript(path, `
calls = 0
function FrameURL(index)
	calls = calls + 1
	return "frame_" .. index .. "_" .. calls
end
`)
		tmpl, err := NewLuaTemplate(path)
		So(err, ShouldBeNil)
		defer tmpl.Close()

		Convey("Render still returns the first URL for an index", func() {
			a, _ := tmpl.Render(5)
			b, _ := tmpl.Render(5)
			So(a, ShouldEqual, "frame_5_1")
			So(b, ShouldEqual, a)
		})

		Convey("Label falls back to the election year", func() {
			So(Label(tmpl, 2), ShouldEqual, "1792")
		})
	})

	Convey("Given a script without FrameURL", t, func() {
		path := "/scripts/empty.lua"
		writeScript(path, `local x = 1`)

		_, err := NewLuaTemplate(path)
		So(errors.Is(err, ErrMissingFunction), ShouldBeTrue)
	})

	Convey("Given a script returning a table", t, func() {
		path := "/scripts/table.lua"
		writeScript(path, `function FrameURL(index) return {} end`)

		tmpl, err := NewLuaTemplate(path)
		So(err, ShouldBeNil)
		defer tmpl.Close()

		_, err = tmpl.Render(1)
		So(err, ShouldNotBeNil)
	})
}

func TestLoad(t *testing.T) {
	Convey("Load", t, func() {
		Convey("Picks a text template for patterns", func() {
			tmpl, err := Load(constant.DefaultFrameTemplate)
			So(err, ShouldBeNil)
			_, ok := tmpl.(*TextTemplate)
			So(ok, ShouldBeTrue)
		})

		Convey("Resolves bare script names in the scripts directory", func() {
			writeScript(filepath.Join(where.Scripts(), "scripted.lua"), `function FrameURL(index) return "s" .. index end`)

			tmpl, err := Load("scripted.lua")
			So(err, ShouldBeNil)
			url, err := tmpl.Render(4)
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "s4")
		})
	})
}
