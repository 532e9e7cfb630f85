package misc

import (
	"fmt"

	"smc/cmd/root"
	"smc/services"

	"github.com/spf13/cobra"
)

var (
	initRepo   string
	initBranch string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise the working directory",
	Long: `Create services/, templates/ and data/ under the working directory.
When a template repository is given (--repo or template.repository), it is
cloned into templates/ with git.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := root.GetApp()
		repo := initRepo
		if repo == "" {
			repo = app.Config.Template.Repository
		}
		branch := initBranch
		if branch == "" {
			branch = app.Config.Template.Branch
		}

		if err := services.Bootstrap(cmd.Context(), app.Work, app.Executor, repo, branch); err != nil {
			return err
		}
		if !root.Quiet() {
			fmt.Printf("Working directory %s is ready\n", app.Work.Path)
		}
		return nil
	},
}

func init() {
	root.RootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initRepo, "repo", "", "Git repository holding templates")
	initCmd.Flags().StringVar(&initBranch, "branch", "", "Branch to clone")
	initCmd.Example = `  smc -w ~/smc init --repo https://github.com/example/smc-templates.git`
}
