package service

import (
	"fmt"

	"smc/cmd/root"
	"smc/services"

	"github.com/spf13/cobra"
)

var (
	deleteName  string
	deletePurge bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a service that is not running",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteService(cmd, deleteName, deletePurge)
	},
}

/**
 * Delete a service directory
 * @param {*cobra.Command} cmd - Command carrying the context
 * @param {string} name - Service name
 * @param {bool} purge - Also remove the data directory
 * @returns {error} Returns error if the service is unknown or running
 */
func deleteService(cmd *cobra.Command, name string, purge bool) error {
	app := root.GetApp()
	svcs, err := app.Discover([]string{name})
	if err != nil {
		return err
	}

	svc := app.Manager(svcs).GetService(name)
	if svc == nil {
		return &services.ServiceError{Op: services.OpDelete, Service: name, Err: services.ErrServiceNotFound}
	}

	tm := services.NewTemplateManager(app.Work)
	if err := tm.DeleteService(cmd.Context(), svc, purge); err != nil {
		return err
	}
	if !root.Quiet() {
		fmt.Printf("Service %s has been deleted\n", name)
	}
	return nil
}

func init() {
	root.RootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringVarP(&deleteName, "name", "n", "", "Service name")
	deleteCmd.Flags().BoolVar(&deletePurge, "purge", false, "Also remove the data directory")
	_ = deleteCmd.MarkFlagRequired("name")
}
