package cmd

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/icon"
	"github.com/mapreel/mapreel/inline"
	"github.com/mapreel/mapreel/session"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(preloadCmd)

	preloadCmd.Flags().StringP("frames", "f", "all", "Frames to fetch, as accepted by play --frames")
	lo.Must0(preloadCmd.RegisterFlagCompletionFunc("frames", completionYears))
	preloadCmd.Flags().IntP("jobs", "j", 4, "Number of frames fetched at once")
}

// preloadCmd fills the frame cache ahead of playback.
var preloadCmd = &cobra.Command{
	Use:   "preload",
	Short: "Fetch frames ahead of time so playback never waits for the network",
	Long: `Fetch every selected frame once. Remote frames are stored in the frame cache,
local frames are only checked for existence.`,
	Run: func(cmd *cobra.Command, args []string) {
		rng, err := inline.ParseRange(lo.Must(cmd.Flags().GetString("frames")), session.Range())
		handleErr(err)

		s, err := session.New(session.Options{
			Range:   mo.Some(rng),
			Overlay: mo.Some(false),
		})
		handleErr(err)
		defer util.Ignore(s.Close)

		var (
			done  atomic.Int32
			total = rng.Len()
			sizes = make([]int, total)
		)

		erase := util.PrintErasable(fmt.Sprintf("%s Fetching %s...", icon.Get(icon.Progress), util.Quantify(total, "frame", "frames")))

		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(lo.Max([]int{1, lo.Must(cmd.Flags().GetInt("jobs"))}))

		for i := rng.Min; i <= rng.Max; i++ {
			index := i
			g.Go(func() error {
				url, err := s.Controller.ImageURL(index)
				if err != nil {
					return err
				}

				data, err := s.Preloader.Fetch(ctx, url)
				if err != nil {
					return fmt.Errorf("frame %d: %w", index, err)
				}

				sizes[index-rng.Min] = len(data)
				done.Add(1)
				return nil
			})
		}

		err = g.Wait()
		erase()
		handleErr(err)

		fmt.Printf(
			"%s fetched %s, %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(util.Quantify(int(done.Load()), "frame", "frames")),
			style.Fg(color.Yellow)(util.Quantify(lo.Sum(sizes), "byte", "bytes")),
		)
	},
}
