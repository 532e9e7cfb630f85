package service

import (
	"fmt"

	"smc/cmd/root"

	"github.com/spf13/cobra"
)

var statusNames []string

var statusCmd = &cobra.Command{
	Use:   "status [service name...]",
	Short: "Show service status",
	Long:  "Run the health check of every selected service, or of all services when none is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showServiceStatus(cmd, selectedNames(statusNames, args))
	},
}

/**
 * Show service status information
 * @param {*cobra.Command} cmd - Command carrying the context
 * @param {[]string} names - Service names, empty checks every service
 * @returns {error} Returns error if a health check could not run
 * @description
 * - Disabled services are reported without running their health check
 */
func showServiceStatus(cmd *cobra.Command, names []string) error {
	app := root.GetApp()
	svcs, err := app.Discover(names)
	if err != nil {
		return err
	}

	reports := app.Manager(svcs).RefreshAll(cmd.Context())
	app.PushMetrics(cmd.Context())
	if err := root.PrintRows(reports, "No services found"); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if r.Detail != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("status check failed for %d service(s)", failed)
	}
	return nil
}

func init() {
	root.RootCmd.AddCommand(statusCmd)
	addServiceFlag(statusCmd, &statusNames)
}
