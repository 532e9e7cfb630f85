package template

import (
	"smc/cmd/root"

	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Template operations (list/create/delete)",
	Long:  `Templates live under <workingdir>/templates; "smc create" copies one into services/.`,
}

const templateExample = `  # scaffold a template, edit it, then create a service from it
  smc template create -n redis
  smc create -t redis -n cache`

func init() {
	root.RootCmd.AddCommand(templateCmd)

	templateCmd.Example = templateExample
}
