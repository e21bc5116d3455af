package cmd

import (
	"strconv"

	"github.com/mapreel/mapreel/election"
	"github.com/mapreel/mapreel/inline"
	"github.com/mapreel/mapreel/session"
	"github.com/spf13/cobra"
)

// parseFrame resolves a frame index or an election year within the configured frames.
func parseFrame(value string) (int, error) {
	r, err := inline.ParseRange(value, session.Range())
	if err != nil {
		return 0, err
	}
	return r.Min, nil
}

func completionYears(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	bounds := session.Range()
	years := make([]string, 0, bounds.Len())
	for i := bounds.Min; i <= bounds.Max; i++ {
		years = append(years, strconv.Itoa(election.Year(i)))
	}
	return years, cobra.ShellCompDirectiveNoFileComp
}
