package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/uber-go/tally/v4/prometheus"
	sdktally "go.temporal.io/sdk/contrib/tally"
	"go.temporal.io/sdk/worker"

	"github.com/temporalio/temporal-restaurant/activities"
	"github.com/temporalio/temporal-restaurant/api"
	"github.com/temporalio/temporal-restaurant/metrics"
	"github.com/temporalio/temporal-restaurant/workflows"
)

// workerCmd represents the worker command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run worker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(os.Stderr)

		scope, err := metrics.NewPrometheusScope(prometheus.Configuration{
			ListenAddress: cfg.MetricsAddr,
			TimerType:     "histogram",
		}, logger)
		if err != nil {
			return err
		}
		defer scope.Close()

		c, err := dialTemporal(logger, sdktally.NewMetricsHandler(scope))
		if err != nil {
			return err
		}
		defer c.Close()

		w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

		w.RegisterWorkflow(workflows.Order)
		w.RegisterActivity(&activities.Activities{Catalog: api.DefaultCatalog()})

		return w.Run(worker.InterruptCh())
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
