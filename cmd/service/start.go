package service

import (
	"smc/cmd/root"

	"github.com/spf13/cobra"
)

var (
	startNames []string
	startAll   bool
)

var startCmd = &cobra.Command{
	Use:   "start [service name...]",
	Short: "Start services that are not running",
	Long: `Run the health check of every selected service, then run pre_start and
start for the ones that are stopped. Running and disabled services are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startServices(cmd, selectedNames(startNames, args))
	},
}

/**
 * Start selected services
 * @param {*cobra.Command} cmd - Command carrying the context
 * @param {[]string} names - Service names, empty with --all selects every service
 * @returns {error} Returns error when a service is unknown or failed to start
 * @description
 * - Prints one row per service: name, result, exit code, prior status, detail
 * - Pushes metrics when a pushgateway is configured
 */
func startServices(cmd *cobra.Command, names []string) error {
	if err := requireTargets(names, startAll); err != nil {
		return err
	}
	app := root.GetApp()
	svcs, err := app.Discover(names)
	if err != nil {
		return err
	}

	rows := app.Manager(svcs).StartAll(cmd.Context())
	app.PushMetrics(cmd.Context())
	if err := root.PrintRows(rows, "No services found"); err != nil {
		return err
	}
	return failures(rows)
}

func init() {
	root.RootCmd.AddCommand(startCmd)
	addServiceFlag(startCmd, &startNames)
	startCmd.Flags().BoolVar(&startAll, "all", false, "Start every discovered service")
	startCmd.Example = serviceExample
}
