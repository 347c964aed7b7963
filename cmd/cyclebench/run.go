package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshuapare/cyclekit/internal/debuglog"
	"github.com/joshuapare/cyclekit/internal/workload"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <suite.toml>",
		Short: "Run a workload suite and report collector results",
		Long: `The run command loads a TOML workload suite, builds each described
graph in its own space, and reports what one collection pass did to it.

Example:
  cyclebench run workloads.toml
  cyclebench run workloads.toml --verbose
  cyclebench run workloads.toml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(args[0])
		},
	}
}

func runSuite(path string) error {
	cfg, err := workload.Load(path)
	if err != nil {
		return err
	}

	log := debuglog.New(os.Stderr, verbose)
	if jsonOut {
		log = debuglog.NewJSON(os.Stderr, verbose)
	}

	results := make([]workload.Result, 0, len(cfg.Workloads))
	for _, w := range cfg.Workloads {
		res, err := workload.Run(w, log)
		if err != nil {
			return fmt.Errorf("run %q: %w", w.Name, err)
		}
		results = append(results, res)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKLOAD\tNODES\tTRACKED\tFREED\tLEFT\tELAPSED")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n",
			r.Workload, r.Nodes, r.TrackedBefore, r.Freed, r.TrackedAfter, r.Elapsed)
	}
	return tw.Flush()
}
