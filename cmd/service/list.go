package service

import (
	"smc/cmd/root"
	"smc/internal/models"

	"github.com/spf13/cobra"
)

var listNames []string

var listCmd = &cobra.Command{
	Use:   "list [service name...]",
	Short: "List discovered services",
	Long:  "List services found under <workingdir>/services without running any script.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listServices(selectedNames(listNames, args))
	},
}

/**
 * List services with their manifest details
 * @param {[]string} names - Service names, empty lists every service
 * @returns {error} Returns error if a named service is unknown
 */
func listServices(names []string) error {
	svcs, err := root.GetApp().Discover(names)
	if err != nil {
		return err
	}

	rows := make([]models.ServiceRow, 0, len(svcs))
	for _, svc := range svcs {
		rows = append(rows, models.ServiceRow{
			Name:      svc.Name,
			Enabled:   svc.Manifest.Enabled(),
			Path:      svc.Dir,
			Variables: svc.Manifest.Variables(),
		})
	}
	return root.PrintRows(rows, "No services found")
}

func init() {
	root.RootCmd.AddCommand(listCmd)
	addServiceFlag(listCmd, &listNames)
}
