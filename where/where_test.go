package where

import (
	"path/filepath"
	"testing"

	"github.com/mapreel/mapreel/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override variable", func() {
			t.Setenv(EnvConfigPath, "/custom/mapreel")
			So(Config(), ShouldEqual, "/custom/mapreel")
			So(lo.Must(filesystem.API().IsDir("/custom/mapreel")), ShouldBeTrue)
		})

		Convey("Frames() and Wiki() live under Cache()", func() {
			So(filepath.Dir(Frames()), ShouldEqual, Cache())
			So(filepath.Dir(Wiki()), ShouldEqual, Cache())
			So(lo.Must(filesystem.API().IsDir(Frames())), ShouldBeTrue)
		})

		Convey("Logs() and Scripts()", func() {
			So(lo.Must(filesystem.API().IsDir(Logs())), ShouldBeTrue)
			So(lo.Must(filesystem.API().IsDir(Scripts())), ShouldBeTrue)
		})

		Convey("Position() is a file inside Config()", func() {
			So(filepath.Dir(Position()), ShouldEqual, Config())
		})
	})
}
