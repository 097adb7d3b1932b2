package main

import (
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/temporalio/temporal-restaurant/api"
	"github.com/temporalio/temporal-restaurant/metrics"
	"github.com/uber-go/tally/v4/prometheus"
	sdktally "go.temporal.io/sdk/contrib/tally"
)

var serveListenAddr string
var serveLocal bool

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the menu API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(os.Stderr)

		scope, err := metrics.NewPrometheusScope(prometheus.Configuration{}, logger)
		if err != nil {
			return err
		}
		defer scope.Close()

		catalog := api.DefaultCatalog()

		var submitter api.OrderSubmitter = api.CatalogSubmitter{Catalog: catalog}
		if !serveLocal {
			c, err := dialTemporal(logger, sdktally.NewMetricsHandler(scope))
			if err != nil {
				return err
			}
			defer c.Close()

			submitter = api.WorkflowSubmitter{Client: c, TaskQueue: cfg.Temporal.TaskQueue}
		}

		srv := &http.Server{
			Handler: api.Router(catalog, submitter, api.WithLogger(logger), api.WithMetrics(scope, scope.Handler())),
			Addr:    serveListenAddr,
		}

		logger.Info("menu api listening", "addr", serveListenAddr, "local", serveLocal)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)

		select {
		case <-sigCh:
			srv.Close()
		case err = <-errCh:
			return err
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveListenAddr, "listen", "l", cfg.ListenAddr, "Listen address")
	serveCmd.Flags().BoolVar(&serveLocal, "local", false, "Estimate preparation time in process instead of via Temporal")

	rootCmd.AddCommand(serveCmd)
}
