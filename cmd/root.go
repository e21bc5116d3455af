// Package cmd implements the command-line interface for mapreel.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/icon"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/log"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/tui"
	"github.com/mapreel/mapreel/version"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("template", "t", "", "Frame URL template or path to a .lua frame script")
	lo.Must0(viper.BindPFlag(key.FramesTemplate, rootCmd.PersistentFlags().Lookup("template")))

	rootCmd.PersistentFlags().StringP("assets", "A", "", "Directory relative frame paths are resolved against")
	lo.Must0(viper.BindPFlag(key.FramesAssets, rootCmd.PersistentFlags().Lookup("assets")))

	rootCmd.PersistentFlags().Bool("no-overlay", false, "Do not fetch Wikipedia data")

	rootCmd.Flags().BoolP("continue", "c", false, "Resume from the last displayed frame")
	rootCmd.Flags().StringP("start", "s", "", "First frame to display, as an index or an election year")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("start", completionYears))
	rootCmd.Flags().BoolP("play", "p", false, "Start playing immediately")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd defines the entry point for mapreel.
var rootCmd = &cobra.Command{
	Use:   constant.Mapreel,
	Short: "Animated election maps in the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Animated election maps in the terminal"),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("no-overlay")) {
			viper.Set(key.OverlayEnable, false)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		start, err := startFlag(cmd)
		handleErr(err)

		options := tui.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
			Start:    start,
			Play:     lo.Must(cmd.Flags().GetBool("play")),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// startFlag reads --start as a frame index or an election year.
func startFlag(cmd *cobra.Command) (mo.Option[int], error) {
	value := lo.Must(cmd.Flags().GetString("start"))
	if value == "" {
		return mo.None[int](), nil
	}

	index, err := parseFrame(value)
	if err != nil {
		return mo.None[int](), err
	}

	return mo.Some(index), nil
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
