package service

import (
	"errors"

	"smc/cmd/root"
	"smc/internal/models"
	"smc/services"

	"github.com/spf13/cobra"
)

var (
	createTemplate string
	createName     string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a service from a template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return createService(createTemplate, createName)
	},
}

func createService(template, name string) error {
	tm := services.NewTemplateManager(root.GetApp().Work)
	path, err := tm.CreateService(template, name)

	row := models.ScaffoldRow{Path: path, Ok: err == nil}
	if err != nil {
		row.Detail = err.Error()
	}
	if perr := root.PrintRows([]models.ScaffoldRow{row}, ""); perr != nil {
		return errors.Join(err, perr)
	}
	return err
}

func init() {
	root.RootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createTemplate, "template", "t", "", "Template name")
	createCmd.Flags().StringVarP(&createName, "name", "n", "", "New service name")
	_ = createCmd.MarkFlagRequired("template")
	_ = createCmd.MarkFlagRequired("name")
	createCmd.Example = `  smc create -t redis -n cache`
}
