package cmd

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInterrupted(t *testing.T) {
	Convey("A cancelled run ends quietly", t, func() {
		So(interrupted(nil), ShouldBeNil)
		So(interrupted(context.Canceled), ShouldBeNil)

		Convey("Even when the cancellation is wrapped by an overlay lookup", func() {
			So(interrupted(fmt.Errorf("overlay of 1789: %w", context.Canceled)), ShouldBeNil)
		})
	})

	Convey("Other failures are reported", t, func() {
		err := errors.New("frame 3: not allowed")
		So(interrupted(err), ShouldEqual, err)
	})
}
