package service

import (
	"smc/cmd/root"

	"github.com/spf13/cobra"
)

var (
	stopNames []string
	stopAll   bool
)

var stopCmd = &cobra.Command{
	Use:   "stop [service name...]",
	Short: "Stop services that are running",
	Long: `Run the health check of every selected service, then run stop and
post_stop for the ones that are running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServices(cmd, selectedNames(stopNames, args))
	},
}

// stopServices mirrors startServices for the stop transition.
func stopServices(cmd *cobra.Command, names []string) error {
	if err := requireTargets(names, stopAll); err != nil {
		return err
	}
	app := root.GetApp()
	svcs, err := app.Discover(names)
	if err != nil {
		return err
	}

	rows := app.Manager(svcs).StopAll(cmd.Context())
	app.PushMetrics(cmd.Context())
	if err := root.PrintRows(rows, "No services found"); err != nil {
		return err
	}
	return failures(rows)
}

func init() {
	root.RootCmd.AddCommand(stopCmd)
	addServiceFlag(stopCmd, &stopNames)
	stopCmd.Flags().BoolVar(&stopAll, "all", false, "Stop every running service")
	stopCmd.Example = serviceExample
}
