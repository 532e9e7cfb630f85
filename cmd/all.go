package cmd

import (
	_ "smc/cmd/metrics"
	_ "smc/cmd/misc"
	_ "smc/cmd/root"
	_ "smc/cmd/service"
	_ "smc/cmd/template"
)
