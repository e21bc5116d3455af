package cmd

import (
	"context"
	"os"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string")
	versionCmd.Flags().BoolP("latest", "l", false, "Also look up the latest release")
}

var versionTemplate = lo.Must(template.New("version").Funcs(map[string]any{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
	"green":   style.Fg(color.Green),
	"yellow":  style.Fg(color.Yellow),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}         {{ bold .Version }}
  {{ faint "Git Commit" }}      {{ bold .Revision }}
  {{ faint "Build Date" }}      {{ bold .BuiltAt }}
  {{ faint "Built By" }}        {{ bold .BuiltBy }}
  {{ faint "Platform" }}        {{ bold .OS }}/{{ bold .Arch }}
{{ with .Latest }}  {{ faint "Latest" }}          {{ if $.Outdated }}{{ yellow . }}{{ else }}{{ green . }}{{ end }}
{{ end }}`))

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Long:  "Display the current application version, build revision, platform architecture, and related metadata.",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := struct {
			Version, OS, Arch, BuiltAt, BuiltBy, Revision, App string
			Latest                                             string
			Outdated                                           bool
		}{
			Version:  constant.Version,
			App:      constant.Mapreel,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			Revision: constant.Revision,
		}

		if lo.Must(cmd.Flags().GetBool("latest")) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			latest, outdated, err := version.Newer(ctx)
			handleErr(err)

			info.Latest, info.Outdated = latest, outdated
		} else {
			defer version.Notify()
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
	},
}
