// Command workloadsim drives a distributed task and a workload queue on a
// fixed tick to observe how a backlog is amortized across cycles.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
