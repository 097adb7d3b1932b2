package main

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/temporalio/temporal-restaurant/apiclient"
	"github.com/temporalio/temporal-restaurant/config"
	"github.com/temporalio/temporal-restaurant/session"
	"go.temporal.io/sdk/client"
)

var cfg = loadConfig()

var apiURL string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "restaurant",
	Short: "Command line tool for the restaurant menu and ordering service.",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", cfg.APIURL, "Menu API base URL")
}

func loadConfig() *config.Config {
	c, err := config.Load()
	cobra.CheckErr(err)
	return c
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

func newSession(logger *slog.Logger) (*session.Session, error) {
	c, err := apiclient.New(
		apiURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return session.New(c, session.WithLogger(logger)), nil
}

func dialTemporal(logger *slog.Logger, metricsHandler client.MetricsHandler) (client.Client, error) {
	return client.Dial(client.Options{
		HostPort:       cfg.Temporal.HostPort,
		Namespace:      cfg.Temporal.Namespace,
		Logger:         logger,
		MetricsHandler: metricsHandler,
	})
}
