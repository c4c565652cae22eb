package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Backend names accepted in crontab.backend.
const (
	BackendExec = "exec"
	BackendFile = "file"
)

type Config struct {
	Schedule struct {
		Cadence     string `mapstructure:"cadence"`
		Interpreter string `mapstructure:"interpreter"`
		Script      string `mapstructure:"script"`
		Validate    bool   `mapstructure:"validate"`
	} `mapstructure:"schedule"`
	Crontab struct {
		Backend string `mapstructure:"backend"`
		Binary  string `mapstructure:"binary"`
		File    string `mapstructure:"file"`
	} `mapstructure:"crontab"`
	Log struct {
		Level  string    `mapstructure:"level"`
		Levels LogLevels `mapstructure:"levels"`
	} `mapstructure:"log"`
	App struct {
		Environment string `mapstructure:"environment"`
		Language    string `mapstructure:"language"`
	} `mapstructure:"app"`
}

// Load reads configuration from defaults, an optional TOML file and
// SCHEDREG_* environment variables, in increasing priority. Flags bound with
// BindFlags take precedence over all of them.
//
// An empty cfgFile looks for ./schedreg.toml and tolerates its absence; an
// explicit path that cannot be read is an error.
func Load(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("schedreg")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("SCHEDREG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		LogLevelsDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Log.Levels = flattenLevels("", viper.Get("log.levels"))

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("schedule.cadence", "*/15 * * * *")
	viper.SetDefault("schedule.interpreter", "/usr/bin/python3")
	viper.SetDefault("schedule.script", "/opt/schedreg/job.py")
	viper.SetDefault("schedule.validate", false)
	viper.SetDefault("crontab.backend", BackendExec)
	viper.SetDefault("crontab.binary", "crontab")
	viper.SetDefault("crontab.file", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("app.environment", "production")
	viper.SetDefault("app.language", "en")
}

// BindFlags registers the override flags on cmd and binds them to their
// configuration keys.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("cadence", "", "cron timing expression (default \"*/15 * * * *\")")
	flags.String("interpreter", "", "absolute path of the interpreter to run")
	flags.String("script", "", "absolute path of the script to schedule")
	flags.Bool("validate", false, "reject a malformed cadence before touching the schedule")
	flags.String("backend", "", "crontab backend: exec or file")
	flags.String("file", "", "schedule file used by the file backend")
	flags.String("lang", "", "language for console messages (en, zh-CN)")
	flags.String("log-level", "", "global log level")

	bind := map[string]string{
		"schedule.cadence":     "cadence",
		"schedule.interpreter": "interpreter",
		"schedule.script":      "script",
		"schedule.validate":    "validate",
		"crontab.backend":      "backend",
		"crontab.file":         "file",
		"app.language":         "lang",
		"log.level":            "log-level",
	}
	for key, name := range bind {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}
