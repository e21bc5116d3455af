package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/election"
	"github.com/mapreel/mapreel/icon"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/network"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/util"
	"github.com/mapreel/mapreel/wiki"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(wikiCmd)

	wikiCmd.Flags().BoolP("images", "i", false, "List the images of the article instead of its text")
	wikiCmd.Flags().StringP("filter", "f", "", "Only keep images whose file name fuzzily matches")
	wikiCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	wikiCmd.Flags().Bool("no-cache", false, "Bypass the response cache")
	wikiCmd.Flags().Duration("timeout", 30*time.Second, "Give up after this long")
}

// wikiCmd prints the Wikipedia data shown next to a frame.
var wikiCmd = &cobra.Command{
	Use:               "wiki [year]",
	Short:             "Print the Wikipedia article or images of an election",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionYears,
	Example:           "  mapreel wiki 1860 --images --filter map",
	Run: func(cmd *cobra.Command, args []string) {
		year, err := strconv.Atoi(args[0])
		handleErr(err)
		if _, ok := election.Index(year); !ok {
			handleErr(fmt.Errorf("%d is not an election year", year))
		}

		gate, err := network.Default()
		handleErr(err)

		client := wiki.New(gate, wiki.Options{
			ThumbWidth: viper.GetInt(key.OverlayThumbWidth),
			NoCache:    lo.Must(cmd.Flags().GetBool("no-cache")),
		})

		ctx, cancel := context.WithTimeout(context.Background(), lo.Must(cmd.Flags().GetDuration("timeout")))
		defer cancel()

		asJson := lo.Must(cmd.Flags().GetBool("json"))
		title := election.ArticleTitle(year)

		if !lo.Must(cmd.Flags().GetBool("images")) {
			erase := util.PrintErasable(fmt.Sprintf("%s Fetching %s...", icon.Get(icon.Progress), title))
			article, err := client.Extract(ctx, title)
			erase()
			handleErr(err)

			if asJson {
				handleErr(json.NewEncoder(os.Stdout).Encode(article))
				return
			}

			width := 80
			if w, _, err := util.TerminalSize(); err == nil {
				width = w
			}

			fmt.Println(style.Title(strings.ReplaceAll(article.Title, "_", " ")))
			fmt.Println()
			fmt.Println(wrap.String(article.Text, width))
			fmt.Println()
			fmt.Println(style.Faint(election.ArticleURL(year)))
			return
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Listing images of %s...", icon.Get(icon.Progress), title))
		files, err := client.Images(ctx, title)
		erase()
		handleErr(err)

		if filter := lo.Must(cmd.Flags().GetString("filter")); filter != "" {
			files = lo.Filter(files, func(file string, _ int) bool {
				return fuzzy.MatchNormalizedFold(filter, file)
			})
		}

		images := make([]*wiki.Image, 0, len(files))
		for _, file := range files {
			image, err := client.ImageInfo(ctx, file)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %s: %s\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)), file, err)
				continue
			}
			images = append(images, image)
		}

		if asJson {
			handleErr(json.NewEncoder(os.Stdout).Encode(images))
			return
		}

		for _, image := range images {
			fmt.Printf("%s %s\n", icon.Get(icon.Image), style.Fg(color.Purple)(image.File))
			fmt.Println(style.Faint(lo.Ternary(image.ThumbURL != "", image.ThumbURL, image.URL)))
		}
	},
}
