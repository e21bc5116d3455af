package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/frame"
	"github.com/mapreel/mapreel/icon"
	"github.com/mapreel/mapreel/inline"
	"github.com/mapreel/mapreel/session"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/util"
	"github.com/mapreel/mapreel/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scriptCmd)
}

// scriptCmd groups the Lua frame script helpers.
var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Manage Lua frame scripts",
	Long: `Frame scripts compute the URL and label of every frame.
Set frames.template to the script path, or to its name inside the scripts directory, to use one.`,
}

func init() {
	scriptCmd.AddCommand(scriptNewCmd)

	scriptNewCmd.Flags().StringP("name", "n", "", "Name of the new script")
	scriptNewCmd.Flags().BoolP("force", "f", false, "Overwrite an existing script")
	lo.Must0(scriptNewCmd.MarkFlagRequired("name"))
}

// scriptNewCmd scaffolds a frame script.
var scriptNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Scaffold a new Lua frame script",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		s := struct {
			Name         string
			Author       string
			FrameURLFn   string
			FrameLabelFn string
		}{
			Name:         lo.Must(cmd.Flags().GetString("name")),
			Author:       author,
			FrameURLFn:   constant.FrameURLFn,
			FrameLabelFn: constant.FrameLabelFn,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("script").Funcs(funcMap).Parse(constant.FrameScriptTemplate)
		handleErr(err)

		target := filepath.Join(where.Scripts(), scriptFilename(s.Name))
		if exists := lo.Must(filesystem.API().Exists(target)); exists && !lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(fmt.Errorf("%s already exists, use --force to overwrite it", target))
		}

		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, s))

		cmd.Println(target)
	},
}

func init() {
	scriptCmd.AddCommand(scriptRunCmd)

	scriptRunCmd.Flags().StringP("frames", "f", "first", "Frames to render, as accepted by play --frames")
	lo.Must0(scriptRunCmd.RegisterFlagCompletionFunc("frames", completionYears))
}

// scriptRunCmd renders frames with a script, for script development.
var scriptRunCmd = &cobra.Command{
	Use:     "run [file]",
	Short:   "Render frames with a Lua frame script",
	Args:    cobra.ExactArgs(1),
	Example: "  mapreel script run ./frames.lua --frames 1-5",
	Run: func(cmd *cobra.Command, args []string) {
		rng, err := inline.ParseRange(lo.Must(cmd.Flags().GetString("frames")), session.Range())
		handleErr(err)

		tmpl, err := frame.NewLuaTemplate(args[0])
		handleErr(err)
		defer tmpl.Close()

		for i := rng.Min; i <= rng.Max; i++ {
			url, err := tmpl.Render(i)
			if err != nil {
				fmt.Printf("%s %d %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), i, err)
				continue
			}

			fmt.Printf(
				"%s %s %s\n",
				style.Fg(color.Purple)(icon.Get(icon.Lua)),
				style.Bold(frame.Label(tmpl, i)),
				url,
			)
		}
	},
}

// scriptFilename turns a display name into a script file name.
func scriptFilename(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '_'
		default:
			return -1
		}
	}, name)

	if name == "" {
		name = "frames"
	}

	return name + ".lua"
}
