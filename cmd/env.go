package cmd

import (
	"os"
	"sort"

	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/config"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")
	envCmd.Flags().BoolP("describe", "d", false, "Print the description of every variable")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long: `Display the supported environment variables and their current values.
Variables may also be defined in the .env file of the config directory; the real environment wins.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			describe  = lo.Must(cmd.Flags().GetBool("describe"))
		)

		type variable struct {
			name, description string
		}

		variables := lo.Map(config.EnvExposed, func(k string, _ int) variable {
			field := config.Default[k]
			return variable{name: field.Env(), description: field.Description}
		})
		variables = append(variables, variable{name: where.EnvConfigPath, description: "Config directory"})

		sort.Slice(variables, func(i, j int) bool {
			return variables[i].name < variables[j].name
		})

		for _, v := range variables {
			value, present := os.LookupEnv(v.name)

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(v.name))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}

			if describe {
				cmd.Println(style.Faint(v.description))
			}
		}

		if lo.Must(filesystem.API().Exists(config.DotEnvPath())) {
			cmd.Println()
			cmd.Println(style.Faint("loaded " + config.DotEnvPath()))
		}
	},
}
