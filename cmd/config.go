package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/config"
	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/icon"
	keys "github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/network"
	"github.com/mapreel/mapreel/style"
	"github.com/mapreel/mapreel/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logLevels = []string{"panic", "fatal", "error", "warn", "info", "debug", "trace"}

// validators reject values a key accepts by type but mapreel cannot use.
var validators = map[string]func(value any) error{
	keys.NetworkAllow: func(value any) error {
		_, err := network.ParseAllowList(value.([]string))
		return err
	},
	keys.IconsVariant:      oneOf(icon.AvailableVariants()...),
	keys.LogsLevel:         oneOf(logLevels...),
	keys.FramesMin:         positive,
	keys.FramesMax:         positive,
	keys.PlaybackInterval:  positive,
	keys.OverlayThumbWidth: positive,
}

func oneOf(options ...string) func(any) error {
	return func(value any) error {
		if lo.Contains(options, value.(string)) {
			return nil
		}
		return fmt.Errorf("%q is not one of %v", value, options)
	}
}

func positive(value any) error {
	if value.(int) < 1 {
		return fmt.Errorf("%d must be at least 1", value)
	}
	return nil
}

// lookupField resolves a key, suggesting the closest known one on a miss.
func lookupField(key string) (config.Field, error) {
	if field, ok := config.Default[key]; ok {
		return field, nil
	}

	closest := lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})

	return config.Field{}, fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

// parseValue converts command line words into the type of the field default.
func parseValue(field config.Field, words []string) (any, error) {
	var (
		value any
		err   error
	)

	switch field.Value.(type) {
	case []string:
		value = words
	case int:
		value, err = strconv.Atoi(words[0])
	case bool:
		value, err = strconv.ParseBool(words[0])
	default:
		value = words[0]
	}

	if err != nil {
		return nil, fmt.Errorf("%s expects %s: %w", field.Key, field.Type(), err)
	}

	if validate, ok := validators[field.Key]; ok {
		if err := validate(value); err != nil {
			return nil, fmt.Errorf("%s: %w", field.Key, err)
		}
	}

	return value, nil
}

func configFile() string {
	return filepath.Join(where.Config(), constant.Mapreel+".toml")
}

// persist writes the in-memory configuration, creating the file on first use.
func persist() error {
	err := viper.WriteConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return viper.SafeWriteConfig()
	}
	return err
}

// keyArgument takes the key from the first argument or from --key.
func keyArgument(cmd *cobra.Command, args []string) (config.Field, error) {
	key := lo.Must(cmd.Flags().GetString("key"))
	if len(args) > 0 {
		key = args[0]
	}

	if key == "" {
		return config.Field{}, fmt.Errorf("key is required as an argument or --key flag")
	}

	return lookupField(key)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configGetCmd, configSetCmd, configWriteCmd, configDeleteCmd, configResetCmd)

	configInfoCmd.Flags().StringSliceP("key", "k", nil, "Only describe these keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Output as json")
	lo.Must0(configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys))
	configInfoCmd.SetOut(os.Stdout)

	configGetCmd.Flags().StringP("key", "k", "", "Key to read")
	lo.Must0(configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys))

	configSetCmd.Flags().StringP("key", "k", "", "Key to update")
	configSetCmd.Flags().StringSliceP("value", "v", nil, "New value, repeat for lists")
	lo.Must0(configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys))

	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite the existing file")

	configResetCmd.Flags().StringP("key", "k", "", "Key to restore")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every key")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	lo.Must0(configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys))
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change mapreel settings",
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings with their current and default values",
	Run: func(cmd *cobra.Command, args []string) {
		fields := lo.Values(config.Default)

		if selected := lo.Must(cmd.Flags().GetStringSlice("key")); len(selected) > 0 {
			fields = fields[:0]
			for _, key := range selected {
				field, err := lookupField(key)
				handleErr(err)
				fields = append(fields, field)
			}
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i := range fields {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(fields[i].Pretty())
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a setting",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := keyArgument(cmd, args)
		handleErr(err)
		fmt.Println(viper.Get(field.Key))
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value...]",
	Short:             "Change a setting and save it",
	Example:           "  mapreel config set playback.interval 500\n  mapreel config set network.allow 'https://en.wikipedia.org/w/api.php**' 'https://upload.wikimedia.org/**'",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := keyArgument(cmd, args)
		handleErr(err)

		words := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) > 1 {
			words = args[1:]
		}
		if len(words) == 0 {
			handleErr(fmt.Errorf("value is required as an argument or --value flag"))
		}

		value, err := parseValue(field, words)
		handleErr(err)

		viper.Set(field.Key, value)
		handleErr(persist())

		success("set %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(value)))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Save the current settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if exists, _ := filesystem.API().Exists(path); exists {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfig())
		success("wrote config to %s", path)
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Remove the config file",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFile()))
		success("deleted config")
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore settings to their defaults",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("key") && !cmd.Flags().Changed("all") {
			handleErr(fmt.Errorf("either --key or --all must be set"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for key, field := range config.Default {
				viper.Set(key, field.Value)
			}
			handleErr(persist())
			success("reset all settings")
			return
		}

		field, err := keyArgument(cmd, nil)
		handleErr(err)

		viper.Set(field.Key, field.Value)
		handleErr(persist())
		success("reset %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(field.Value)))
	},
}
