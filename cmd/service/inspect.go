package service

import (
	"encoding/json"
	"fmt"

	"smc/cmd/root"
	"smc/services"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect {service name}",
	Short: "Print the parsed manifest of a service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspectService(args[0])
	},
}

type inspectOutput struct {
	Dir       string      `json:"dir"`
	DataDir   string      `json:"data_dir"`
	Variables []string    `json:"variables"`
	Manifest  interface{} `json:"manifest"`
}

// inspectService prints the manifest as TOML, or everything as JSON with -j.
func inspectService(name string) error {
	app := root.GetApp()
	svcs, err := app.Discover([]string{name})
	if err != nil {
		return err
	}
	svc := app.Manager(svcs).GetService(name)
	if svc == nil {
		return &services.ServiceError{Op: services.OpDiscover, Service: name, Err: services.ErrServiceNotFound}
	}
	if root.Quiet() {
		return nil
	}

	if root.JSONMode() {
		data, err := json.MarshalIndent(inspectOutput{
			Dir:       svc.Dir,
			DataDir:   svc.DataDir,
			Variables: svc.Manifest.Variables(),
			Manifest:  svc.Manifest,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	data, err := svc.Manifest.Marshal()
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n", svc.Dir)
	fmt.Print(string(data))
	if vars := svc.Manifest.Variables(); len(vars) > 0 {
		fmt.Printf("# variables: %v\n", vars)
	}
	return nil
}

func init() {
	root.RootCmd.AddCommand(inspectCmd)
}
