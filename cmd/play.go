package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/inline"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/session"
	"github.com/mapreel/mapreel/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("frames", "f", "all", "Frames to play: all, first, last, N, A-B. Election years are accepted in place of indices")
	lo.Must0(playCmd.RegisterFlagCompletionFunc("frames", completionYears))
	playCmd.Flags().BoolP("json", "j", false, "Write one JSON object per frame")
	playCmd.Flags().BoolP("overlay", "w", false, "Include the Wikipedia article and images of every frame")
	playCmd.Flags().DurationP("interval", "i", 0, "Delay between frames. Zero writes them without delay")
	playCmd.Flags().Bool("realtime", false, "Use the configured playback interval")
	playCmd.MarkFlagsMutuallyExclusive("interval", "realtime")

	playCmd.Flags().StringP("output", "o", "", "Write the output to a file instead of stdout")
}

// playCmd plays frames without a user interface.
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play frames non-interactively and print one line per frame",
	Long: `Play a range of frames and print one line per frame, as tab separated plain text or as JSON.

Frame selectors:
  all - every configured frame
  first, last - a single frame
  [number] - a frame index or an election year
  [a]-[b] - an inclusive range of indices or years`,
	Example: "  mapreel play --frames 1860-1900 --json --overlay",
	Run: func(cmd *cobra.Command, args []string) {
		rng, err := inline.ParseRange(lo.Must(cmd.Flags().GetString("frames")), session.Range())
		handleErr(err)

		interval := lo.Must(cmd.Flags().GetDuration("interval"))
		if lo.Must(cmd.Flags().GetBool("realtime")) {
			interval = time.Duration(viper.GetInt(key.PlaybackInterval)) * time.Millisecond
		}

		var out io.Writer = os.Stdout
		if path := lo.Must(cmd.Flags().GetString("output")); path != "" {
			handleErr(filesystem.API().MkdirAll(filepath.Dir(path), os.ModePerm))
			file, err := filesystem.API().Create(path)
			handleErr(err)
			defer util.Ignore(file.Close)
			out = file
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		options := inline.Options{
			Out:      out,
			Json:     lo.Must(cmd.Flags().GetBool("json")),
			Range:    mo.Some(rng),
			Overlay:  lo.Must(cmd.Flags().GetBool("overlay")) && viper.GetBool(key.OverlayEnable),
			Interval: interval,
		}

		handleErr(interrupted(inline.Run(ctx, &options)))
	},
}

// interrupted drops the error of a run stopped with Ctrl-C, wherever the cancellation surfaced.
func interrupted(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func init() {
	playCmd.AddCommand(playSchemaCmd)
}

// playSchemaCmd prints the JSON schema of play --json lines.
var playSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of play --json output lines",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(inline.Schema()))
	},
}
