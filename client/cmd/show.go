package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iptecharch/iosxr-driver/driver"
)

// factsCmd represents the facts command
var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "get device facts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDriver(cmd, func(ctx context.Context, d *driver.XRDriver) error {
			facts, err := d.GetFacts(ctx)
			if err != nil {
				return err
			}
			return printJSON(facts)
		})
	},
}

// interfacesCmd represents the interfaces command
var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "get normalized interface records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDriver(cmd, func(ctx context.Context, d *driver.XRDriver) error {
			ifaces, err := d.GetInterfaces(ctx)
			if err != nil {
				return err
			}
			return printJSON(ifaces)
		})
	},
}

// countersCmd represents the counters command
var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "get interface counters, -1 means not reported",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDriver(cmd, func(ctx context.Context, d *driver.XRDriver) error {
			counters, err := d.GetInterfacesCounters(ctx)
			if err != nil {
				return err
			}
			return printJSON(counters)
		})
	},
}

// bgpNeighborsCmd represents the bgp-neighbors command
var bgpNeighborsCmd = &cobra.Command{
	Use:   "bgp-neighbors",
	Short: "get bgp neighbors grouped by instance",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDriver(cmd, func(ctx context.Context, d *driver.XRDriver) error {
			neighbors, err := d.GetBGPNeighbors(ctx)
			if err != nil {
				return err
			}
			return printJSON(neighbors)
		})
	},
}

// environmentCmd represents the environment command
var environmentCmd = &cobra.Command{
	Use:   "environment",
	Short: "get environment sensors (not supported on this platform, returns an empty record)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDriver(cmd, func(ctx context.Context, d *driver.XRDriver) error {
			env, err := d.GetEnvironment(ctx)
			if err != nil {
				return err
			}
			return printJSON(env)
		})
	},
}

func init() {
	rootCmd.AddCommand(factsCmd)
	rootCmd.AddCommand(interfacesCmd)
	rootCmd.AddCommand(countersCmd)
	rootCmd.AddCommand(bgpNeighborsCmd)
	rootCmd.AddCommand(environmentCmd)
}
