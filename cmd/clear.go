package cmd

import (
	"fmt"

	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/icon"
	"github.com/mapreel/mapreel/internal/cache"
	"github.com/mapreel/mapreel/util"
	"github.com/mapreel/mapreel/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, l := range locations {
		if l.clearable {
			clearCmd.Flags().BoolP(l.flag, l.clearShort, false, "remove the "+l.name)
		}
	}

	clearCmd.Flags().BoolP("expired", "e", false, "remove expired frames only")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached frames, Wikipedia responses and saved state",
	Run: func(cmd *cobra.Command, args []string) {
		var cleared bool

		if lo.Must(cmd.Flags().GetBool("expired")) {
			cleared = true
			removed := cache.New(where.Frames(), cache.TTL).CollectGarbage()
			success("removed %s", util.Quantify(removed, "expired frame", "expired frames"))
		}

		for _, l := range locations {
			if !l.clearable || !lo.Must(cmd.Flags().GetBool(l.flag)) {
				continue
			}

			cleared = true
			erase := util.PrintErasable(fmt.Sprintf("%s Removing the %s...", icon.Get(icon.Progress), l.name))
			err := filesystem.API().RemoveAll(l.path())
			erase()
			handleErr(err)
			success("removed the %s", l.name)
		}

		if !cleared {
			handleErr(cmd.Help())
		}
	},
}
