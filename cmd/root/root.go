package root

import (
	"smc/internal/config"
	"smc/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var RootCmd = &cobra.Command{
	Use:   "smc",
	Short: "Lightweight local service manager",
	Long: `smc manages local services described by manifest.toml files.
Each service declares shell scripts for health check, start and stop;
smc runs them on demand and reports the outcome.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadApp,
}

var (
	cfgFile  string
	quiet    bool
	jsonMode bool
)

func init() {
	f := RootCmd.PersistentFlags()
	f.SortFlags = false
	f.StringP("workingdir", "w", "", "Working directory (default $SMC_WORKING_DIR or /var/smc)")
	f.BoolVarP(&quiet, "quiet", "q", false, "Suppress normal output")
	f.BoolVarP(&jsonMode, "json", "j", false, "Print results as JSON")
	f.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.smc/config.yaml or /etc/smc/config.yaml)")
	f.Int("jobs", 1, "Services processed concurrently")
	f.Duration("timeout", 0, "Deadline for each script, 0 disables it")
	f.String("shell", "", "Shell used to run scripts (default sh)")
	f.String("log-level", "", "Log level: debug/info/warn/error")

	bind("working_dir", "workingdir")
	bind("exec.jobs", "jobs")
	bind("exec.timeout", "timeout")
	bind("exec.shell", "shell")
	bind("log.level", "log-level")
}

func bind(key, flag string) {
	if err := viper.BindPFlag(key, RootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func loadApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	logger.InitLogger(cfg.Log.Path, cfg.Log.Level, false)
	logger.Debugf("Working directory: %s", cfg.WorkingDir)
	app = newApp(cfg)
	return nil
}
