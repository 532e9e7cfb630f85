package service

import (
	"errors"
	"fmt"

	"smc/internal/models"

	"github.com/spf13/cobra"
)

const serviceExample = `  # start two services
  smc start -s redis -s nginx

  # stop everything that is running, four at a time
  smc stop --all --jobs 4`

/**
 * Register the repeatable -s/--service flag
 * @param {*cobra.Command} cmd - Command receiving the flag
 * @param {*[]string} names - Destination of the selected names
 */
func addServiceFlag(cmd *cobra.Command, names *[]string) {
	cmd.Flags().StringSliceVarP(names, "service", "s", nil, "Service name, repeatable")
}

// selectedNames merges -s values and positional arguments.
func selectedNames(flagNames, args []string) []string {
	return append(append([]string{}, flagNames...), args...)
}

// requireTargets rejects a lifecycle command that names no service.
func requireTargets(names []string, all bool) error {
	if len(names) == 0 && !all {
		return errors.New("no service given, use -s NAME or --all")
	}
	if len(names) > 0 && all {
		return errors.New("-s and --all are mutually exclusive")
	}
	return nil
}

// failures counts rows that did not succeed or get skipped.
func failures(rows []models.OperationResult) error {
	failed := 0
	for _, row := range rows {
		if row.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d services failed", failed, len(rows))
	}
	return nil
}
