package main

import (
	"fmt"

	"github.com/azargarov/workload/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "workloadsim",
	Short: "Simulate tick-driven amortized work distribution",
	Long: `workloadsim queues a backlog of deferred items into a round-robin
distributed task and a set of conditional workloads into a workload queue,
then drives both from a periodic tick, one slot per cycle.`,
	SilenceUsage: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out, err := cfg.YAML()
		if err != nil {
			return fmt.Errorf("render config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (YAML)")

	flags := rootCmd.PersistentFlags()
	flags.Int("slots", 0, "distribution size of the distributed task")
	flags.Int("items", 0, "suppliers queued in the distributed task at start")
	flags.Int("cycles", 0, "stop after this many cycles (0 = until drained or interrupted)")
	flags.Int("interval-ms", 0, "tick period in milliseconds")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address")

	rootCmd.AddCommand(runCmd, configCmd)
}

// flagKeys maps CLI flags onto configuration keys.
var flagKeys = map[string]string{
	"slots":        "distributed.slots",
	"items":        "distributed.items",
	"cycles":       "driver.cycles",
	"interval-ms":  "driver.interval_ms",
	"metrics-addr": "metrics.addr",
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	path, _ := cmd.Flags().GetString("config")
	return config.Load(v, path)
}
