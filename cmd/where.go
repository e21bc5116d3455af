package cmd

import (
	"os"

	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// location is a directory or file mapreel keeps on disk.
type location struct {
	name string
	flag string
	path func() string

	// whereShort and clearShort are the one letter flags of each command, if any.
	whereShort string
	clearShort string

	// listed locations are printed by a bare `where`.
	listed    bool
	clearable bool
}

var locations = []location{
	{name: "config", flag: "config", path: where.Config, whereShort: "c", listed: true},
	{name: "frame scripts", flag: "scripts", path: where.Scripts, whereShort: "s", listed: true},
	{name: "logs", flag: "logs", path: where.Logs, whereShort: "l", listed: true, clearable: true},
	{name: "cache directory", flag: "cache", path: where.Cache, clearShort: "c", clearable: true},
	{name: "frame cache", flag: "frames", path: where.Frames, clearShort: "f", clearable: true},
	{name: "wikipedia cache", flag: "wiki", path: where.Wiki, clearShort: "w", clearable: true},
	{name: "saved position", flag: "position", path: where.Position, clearShort: "p", clearable: true},
	{name: "jump queries", flag: "queries", path: where.Queries, clearShort: "q", clearable: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().BoolP(l.flag, l.whereShort, false, "print the "+l.name+" path")
		if !l.listed {
			lo.Must0(whereCmd.Flags().MarkHidden(l.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where mapreel keeps its files",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.flag)) {
				cmd.Println(l.path())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		listed := lo.Filter(locations, func(l location, _ int) bool { return l.listed })

		for i, l := range listed {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", header(l.name), style.Faint("--"+l.flag))
			cmd.Println(l.path())
		}
	},
}
