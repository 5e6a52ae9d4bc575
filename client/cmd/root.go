package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iptecharch/iosxr-driver/config"
	"github.com/iptecharch/iosxr-driver/driver"
)

var configFile string
var debug bool
var trace bool
var metricsAddress string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "xrc",
	Short:        "interact with an IOS-XR device over netconf",
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
		if trace {
			log.SetLevel(log.TraceLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "~/.xrc.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "set log level to DEBUG")
	rootCmd.PersistentFlags().BoolVarP(&trace, "trace", "t", false, "set log level to TRACE")
	rootCmd.PersistentFlags().StringVar(&metricsAddress, "metrics-address", "", "serve prometheus metrics on this address while the command runs")
}

// withDriver loads the config, opens the session, runs fn and closes the
// session again.
func withDriver(cmd *cobra.Command, fn func(ctx context.Context, d *driver.XRDriver) error) error {
	file, err := homedir.Expand(configFile)
	if err != nil {
		return err
	}
	cfg, err := config.New(file)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	d, err := driver.New(cfg.Target)
	if err != nil {
		return err
	}

	if metricsAddress != "" {
		reg := prometheus.NewRegistry()
		err = d.RegisterMetrics(reg)
		if err != nil {
			return err
		}
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			log.Infof("serving metrics on %s", metricsAddress)
			err := http.ListenAndServe(metricsAddress, mux)
			if err != nil {
				log.Errorf("metrics server failed: %v", err)
			}
		}()
	}

	ctx := cmd.Context()
	err = d.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err := d.Close(ctx)
		if err != nil {
			log.Errorf("failed to close session: %v", err)
		}
	}()
	return fn(ctx, d)
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
