package template

import (
	"errors"
	"fmt"

	"smc/cmd/root"
	"smc/services"

	"github.com/spf13/cobra"
)

var deleteNames []string

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteTemplates(deleteNames)
	},
}

func deleteTemplates(names []string) error {
	tm := services.NewTemplateManager(root.GetApp().Work)

	var errs []error
	for _, name := range names {
		if err := tm.DeleteTemplate(name); err != nil {
			errs = append(errs, err)
			continue
		}
		if !root.Quiet() {
			fmt.Printf("Template %s has been deleted\n", name)
		}
	}
	return errors.Join(errs...)
}

func init() {
	templateCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringSliceVarP(&deleteNames, "name", "n", nil, "Template name, repeatable")
	_ = deleteCmd.MarkFlagRequired("name")
}
