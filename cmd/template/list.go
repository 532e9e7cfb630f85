package template

import (
	"errors"

	"smc/cmd/root"
	"smc/internal/logger"
	"smc/internal/models"
	"smc/services"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listTemplates()
	},
}

/**
 * List templates under the working directory
 * @returns {error} Returns error if the templates directory cannot be read
 * @description
 * - Templates with an invalid manifest are logged and skipped
 */
func listTemplates() error {
	templates, err := root.GetApp().Work.Templates()
	if err != nil {
		var merr *services.MultiError
		if !errors.As(err, &merr) {
			return err
		}
		for _, e := range merr.Errors {
			logger.Warnf("Skipping template: %v", e)
		}
	}

	rows := make([]models.TemplateRow, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, models.TemplateRow{Name: t.Name, Path: t.Path})
	}
	return root.PrintRows(rows, "No templates found")
}

func init() {
	templateCmd.AddCommand(listCmd)
}
