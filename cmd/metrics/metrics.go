package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smc/cmd/root"

	"github.com/spf13/cobra"
)

var (
	pushGatewayAddr string
	pushTimeout     time.Duration
)

func init() {
	root.RootCmd.AddCommand(Cmd)
	Cmd.Flags().SortFlags = false
	Cmd.Flags().StringVarP(&pushGatewayAddr, "addr", "a", "", "Pushgateway address (default metrics.pushgateway)")
	Cmd.Flags().DurationVar(&pushTimeout, "push-timeout", 30*time.Second, "Pushgateway request timeout, scripts keep --timeout")
}

var Cmd = &cobra.Command{
	Use:   "metrics",
	Short: "Check every service and push status metrics to a Prometheus pushgateway",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := root.GetApp()
		addr := pushGatewayAddr
		if addr == "" {
			addr = app.Config.Metrics.Pushgateway
		}
		if addr == "" {
			return errors.New("no pushgateway address, use --addr or metrics.pushgateway")
		}

		svcs, err := app.Discover(nil)
		if err != nil {
			return err
		}
		app.Manager(svcs).RefreshAll(cmd.Context())

		ctx, cancel := context.WithTimeout(cmd.Context(), pushTimeout)
		defer cancel()
		if err := app.Metrics.Push(ctx, addr, app.Config.Metrics.Job); err != nil {
			return fmt.Errorf("push metrics to %s: %w", addr, err)
		}
		if !root.Quiet() {
			fmt.Printf("Pushed metrics of %d services to %s\n", len(svcs), addr)
		}
		return nil
	},
}
