package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iptecharch/iosxr-driver/driver"
)

var replace bool
var commit bool
var showDiff bool

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <config-file>",
	Short: "stage a candidate config from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, d *driver.XRDriver) error {
			var err error
			if replace {
				err = d.LoadReplaceCandidate(ctx, args[0], "")
			} else {
				err = d.LoadMergeCandidate(ctx, args[0], "")
			}
			if err != nil {
				return err
			}

			if showDiff {
				out, err := d.CompareConfig(ctx)
				if err != nil {
					return err
				}
				fmt.Println(out)
			}

			if !commit {
				// leave nothing staged behind the session
				return d.DiscardConfig(ctx)
			}
			return d.CommitConfig(ctx)
		})
	},
}

// rollbackCmd represents the rollback command
var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "rollback the last commit (not supported on this platform, a no-op)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDriver(cmd, func(ctx context.Context, d *driver.XRDriver) error {
			return d.Rollback(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(rollbackCmd)
	loadCmd.Flags().BoolVarP(&replace, "replace", "", false, "replace the running config instead of merging into it")
	loadCmd.Flags().BoolVarP(&commit, "commit", "", false, "commit the candidate; without it the candidate is discarded")
	loadCmd.Flags().BoolVarP(&showDiff, "diff", "", false, "print the candidate vs running diff")
}
