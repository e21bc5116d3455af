package version

import (
	"context"
	"fmt"
	"time"

	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/icon"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/util"
	"github.com/spf13/viper"
)

// Newer returns the latest release when it is ahead of the running build.
func Newer(ctx context.Context) (latest string, ok bool, err error) {
	latest, err = Latest(ctx)
	if err != nil {
		return "", false, err
	}

	comp, err := Compare(latest, constant.Version)
	if err != nil {
		return "", false, err
	}

	return latest, comp > 0, nil
}

// Notify prints a release banner when cli.version_check is on and a newer release exists.
// Lookup failures are silent.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(icon.Get(icon.Progress) + " Looking for a newer mapreel...")
	latest, ok, err := Newer(ctx)
	erase()

	if err != nil || !ok {
		return
	}

	fmt.Printf("\n%s mapreel %s is out %s\n%s\n\n",
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint("(running "+constant.Version+")"),
		style.Faint(constant.Repository+"/releases/tag/v"+latest),
	)
}
