package service

import (
	"smc/cmd/root"
	"smc/services"

	"github.com/spf13/cobra"
)

var (
	restartNames []string
	restartAll   bool
)

var restartCmd = &cobra.Command{
	Use:   "restart [service name...]",
	Short: "Stop then start services",
	RunE: func(cmd *cobra.Command, args []string) error {
		return restartServices(cmd, selectedNames(restartNames, args))
	},
}

/**
 * Restart selected services
 * @param {*cobra.Command} cmd - Command carrying the context
 * @param {[]string} names - Service names
 * @returns {error} Returns error when a service failed to stop or start
 * @description
 * - Stops the running ones, then starts every service that is not running
 * - A service whose stop failed is not started again
 */
func restartServices(cmd *cobra.Command, names []string) error {
	if err := requireTargets(names, restartAll); err != nil {
		return err
	}
	app := root.GetApp()
	svcs, err := app.Discover(names)
	if err != nil {
		return err
	}

	rows := app.Manager(svcs).StopAll(cmd.Context())

	var (
		again []*services.ServiceInformation
		at    []int
	)
	for i, row := range rows {
		if !row.Failed() {
			again = append(again, svcs[i])
			at = append(at, i)
		}
	}
	started := app.Manager(again).StartAll(cmd.Context())
	for j, i := range at {
		rows[i] = started[j]
	}
	app.PushMetrics(cmd.Context())

	if err := root.PrintRows(rows, "No services found"); err != nil {
		return err
	}
	return failures(rows)
}

func init() {
	root.RootCmd.AddCommand(restartCmd)
	addServiceFlag(restartCmd, &restartNames)
	restartCmd.Flags().BoolVar(&restartAll, "all", false, "Restart every discovered service")
}
