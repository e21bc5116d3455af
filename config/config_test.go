package config

import (
	"os"
	"testing"

	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.FramesMax), ShouldEqual, 57)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("overlay.thumb_width")
			So(result, ShouldEqual, "overlay_thumb_width")
		})

		Convey("Should export variables from the .env file without overriding the environment", func() {
			So(filesystem.API().WriteFile(DotEnvPath(), []byte("MAPREEL_TEST_DOTENV=from-file\nMAPREEL_TEST_PRESET=from-file\n"), 0o644), ShouldBeNil)
			t.Setenv("MAPREEL_TEST_PRESET", "from-env")
			defer os.Unsetenv("MAPREEL_TEST_DOTENV")

			So(Setup(), ShouldBeNil)
			So(os.Getenv("MAPREEL_TEST_DOTENV"), ShouldEqual, "from-file")
			So(os.Getenv("MAPREEL_TEST_PRESET"), ShouldEqual, "from-env")

			So(filesystem.API().Remove(DotEnvPath()), ShouldBeNil)
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.OverlayThumbWidth]

		Convey("Env should be prefixed and upper cased", func() {
			So(field.Env(), ShouldEqual, "MAPREEL_OVERLAY_THUMB_WIDTH")
		})

		Convey("Type name should follow the default value", func() {
			So(field.Type(), ShouldEqual, "int")
			allow := Default[key.NetworkAllow]
			So(allow.Type(), ShouldEqual, "[]string")
		})

		Convey("Pretty should name the key and its environment variable", func() {
			pretty := field.Pretty()
			So(pretty, ShouldContainSubstring, key.OverlayThumbWidth)
			So(pretty, ShouldContainSubstring, "$MAPREEL_OVERLAY_THUMB_WIDTH")
		})
	})
}
