package cmd

import (
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mapreel/mapreel/mini"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(miniCmd)

	miniCmd.Flags().BoolP("continue", "c", false, "Resume from the last displayed frame")
	miniCmd.Flags().StringP("start", "s", "", "First frame to display, as an index or an election year")
	lo.Must0(miniCmd.RegisterFlagCompletionFunc("start", completionYears))
}

// miniCmd launches the line mode interface.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Step through the frames with line prompts",
	Long:  `Browse the elections with plain line prompts instead of the full screen player.`,
	Run: func(cmd *cobra.Command, args []string) {
		start, err := startFlag(cmd)
		handleErr(err)

		options := mini.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
			Start:    start,
		}
		err = mini.Run(&options)

		if err != nil && err != terminal.InterruptErr {
			handleErr(err)
		}
	},
}
