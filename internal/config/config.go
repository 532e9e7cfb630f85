package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"smc/internal/env"

	"github.com/spf13/viper"
)

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path, "console" writes to stderr
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

/**
 * Script execution configuration
 * @property {string} shell - Interpreter invoked as `<shell> -c <script>`
 * @property {time.Duration} timeout - Deadline for one script, 0 disables it
 * @property {int} jobs - Services processed concurrently by batch commands
 */
type ExecConfig struct {
	Shell   string        `mapstructure:"shell"`
	Timeout time.Duration `mapstructure:"timeout"`
	Jobs    int           `mapstructure:"jobs"`
}

/**
 * Metrics configuration
 * @property {string} pushgateway - Pushgateway address, empty disables pushing
 * @property {string} job - Job label used when pushing
 */
type MetricsConfig struct {
	Pushgateway string `mapstructure:"pushgateway"`
	Job         string `mapstructure:"job"`
}

// TemplateConfig points at the repository cloned by `smc init`.
type TemplateConfig struct {
	Repository string `mapstructure:"repository"`
	Branch     string `mapstructure:"branch"`
}

type AppConfig struct {
	WorkingDir string         `mapstructure:"working_dir"`
	Log        LogConfig      `mapstructure:"log"`
	Exec       ExecConfig     `mapstructure:"exec"`
	Metrics    MetricsConfig  `mapstructure:"metrics"`
	Template   TemplateConfig `mapstructure:"template"`
}

// EnvPrefix prefixes every environment override, e.g. SMC_EXEC_SHELL.
const EnvPrefix = "SMC"

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("working_dir", env.GetWorkingDir())
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.path", "console")
	v.SetDefault("exec.shell", env.DefaultShell)
	v.SetDefault("exec.timeout", time.Duration(0))
	v.SetDefault("exec.jobs", 1)
	v.SetDefault("metrics.pushgateway", "")
	v.SetDefault("metrics.job", "smc")
	v.SetDefault("template.repository", "")
	v.SetDefault("template.branch", "")
}

/**
 * Load application configuration
 * @param {*viper.Viper} v - Viper instance, flags may already be bound to it
 * @param {string} cfgFile - Explicit config file, empty searches the default locations
 * @returns {*AppConfig} Loaded configuration
 * @returns {error} Read or decode error; a missing default config file is not an error
 * @description
 * - Precedence: bound flags, SMC_* environment, config file, defaults
 * - Default locations: $HOME/.smc/config.yaml, /etc/smc/config.yaml
 */
func LoadConfig(v *viper.Viper, cfgFile string) (*AppConfig, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := env.GetUserConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath("/etc/smc")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the executor and batch manager cannot work with.
func (c *AppConfig) Validate() error {
	if c.WorkingDir == "" {
		return errors.New("working_dir must not be empty")
	}
	if c.Exec.Shell == "" {
		return errors.New("exec.shell must not be empty")
	}
	if c.Exec.Timeout < 0 {
		return fmt.Errorf("exec.timeout must not be negative: %s", c.Exec.Timeout)
	}
	if c.Exec.Jobs < 1 {
		c.Exec.Jobs = 1
	}
	return nil
}
