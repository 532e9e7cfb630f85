package template

import (
	"fmt"

	"smc/cmd/root"
	"smc/internal/models"
	"smc/services"

	"github.com/spf13/cobra"
)

var createNames []string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create skeleton templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return createTemplates(createNames)
	},
}

// createTemplates reports one row per name and fails if any creation failed.
func createTemplates(names []string) error {
	tm := services.NewTemplateManager(root.GetApp().Work)

	rows := make([]models.ScaffoldRow, 0, len(names))
	failed := 0
	for _, name := range names {
		path, err := tm.CreateTemplate(name)
		row := models.ScaffoldRow{Path: path, Ok: err == nil}
		if err != nil {
			row.Detail = err.Error()
			failed++
		}
		rows = append(rows, row)
	}
	if err := root.PrintRows(rows, "No templates created"); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d templates could not be created", failed, len(names))
	}
	return nil
}

func init() {
	templateCmd.AddCommand(createCmd)
	createCmd.Flags().StringSliceVarP(&createNames, "name", "n", nil, "Template name, repeatable")
	_ = createCmd.MarkFlagRequired("name")
}
