// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.Mapreel)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	if err := loadDotEnv(); err != nil {
		return err
	}

	viper.SetEnvPrefix(constant.Mapreel)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// DotEnvPath is the optional dotenv file read before environment bindings are resolved.
func DotEnvPath() string {
	return filepath.Join(where.Config(), ".env")
}

// loadDotEnv exports the variables of the config dir .env file without overriding the real environment.
func loadDotEnv() error {
	path := DotEnvPath()
	if !lo.Must(filesystem.API().Exists(path)) {
		return nil
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return err
	}

	for k, v := range vars {
		if _, set := os.LookupEnv(k); !set {
			if err := os.Setenv(k, v); err != nil {
				return err
			}
		}
	}

	return nil
}
