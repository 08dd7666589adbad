// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/matbench/bench"
	"github.com/ajroetker/matbench/internal/cpuinfo"
	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/workerpool"
)

// options holds the raw flag values before they are turned into a Config.
type options struct {
	cfg          bench.Config
	strategy     string
	benchmarking bool
	csvHeader    bool
	configPath   string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: bench.DefaultConfig()}

	cmd := &cobra.Command{
		Use:           "matbench",
		Short:         "Compare sequential and parallel integer matrix multiplication",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.cfg.M, "rows", "m", opts.cfg.M, "Number of rows of the first matrix")
	f.IntVarP(&opts.cfg.N, "inner", "n", opts.cfg.N, "Columns of the first matrix and rows of the second")
	f.IntVarP(&opts.cfg.K, "cols", "k", opts.cfg.K, "Number of columns of the second matrix")
	f.Int64VarP(&opts.cfg.Lower, "lower", "l", opts.cfg.Lower, "Lower limit of range of values")
	f.Int64VarP(&opts.cfg.Upper, "upper", "u", opts.cfg.Upper, "Upper limit of range of values")
	f.Uint64VarP(&opts.cfg.Seed, "seed", "s", 0, "Random seed (default: drawn at random and printed)")
	f.BoolVar(&opts.benchmarking, "benchmarking", false, "Print one CSV line instead of the human-readable report")
	f.BoolVar(&opts.csvHeader, "csv-header", false, "Print the CSV column names before the first line")
	f.IntVar(&opts.cfg.Workers, "workers", 0, "Worker pool size (default: $"+workerpool.EnvWorkers+" or GOMAXPROCS)")
	f.StringVar(&opts.strategy, "strategy", matmul.StrategyStatic.String(), "Row partitioning: static, strips or rows")
	f.IntVar(&opts.cfg.StripRows, "strip-rows", opts.cfg.StripRows, "Rows per strip for --strategy=strips")
	f.BoolVar(&opts.cfg.TransposeB, "transpose-b", false, "Multiply against a transposed copy of B on the parallel path")
	f.BoolVar(&opts.cfg.IncludeGeneration, "include-generation", false, "Include input generation in both timings")
	f.BoolVar(&opts.cfg.Verify, "verify", opts.cfg.Verify, "Check that both products are identical")
	f.BoolVar(&opts.cfg.PrintMatrices, "print", false, "Print the input and product matrices (default: on unless --benchmarking)")
	f.StringVar(&opts.configPath, "config", "", "YAML sweep file; runs every configuration it lists")
	f.StringVar(&opts.logLevel, "log-level", "warning", "Log level: debug, info, warning, error")
	f.SortFlags = false

	cmd.AddCommand(newCPUInfoCmd())
	return cmd
}

func setupLogging(w io.Writer, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return nil
}

// resolve turns flags and environment into the final Config.
func resolve(flags *pflag.FlagSet, opts *options) (bench.Config, error) {
	cfg := opts.cfg

	st, err := matmul.ParseStrategy(opts.strategy)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", bench.ErrInvalidConfig, err)
	}
	cfg.Strategy = st
	cfg.HasSeed = flags.Changed("seed")

	if !flags.Changed("workers") {
		if cfg.Workers, err = workerpool.SizeFromEnv(); err != nil {
			return cfg, err
		}
	} else if cfg.Workers <= 0 {
		return cfg, fmt.Errorf("--workers=%d must be positive: %w", cfg.Workers, bench.ErrInvalidConfig)
	}

	if !flags.Changed("print") {
		cfg.PrintMatrices = !opts.benchmarking
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options) error {
	if err := setupLogging(cmd.ErrOrStderr(), opts.logLevel); err != nil {
		return err
	}
	cfg, err := resolve(cmd.Flags(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var rep bench.Reporter
	if opts.benchmarking || opts.configPath != "" {
		rep = bench.NewCSVReporter(out, opts.csvHeader)
	} else {
		host := cpuinfo.Detect()
		rep = bench.NewTextReporter(out, &host)
	}

	if opts.configPath != "" {
		return runSweep(cmd, opts.configPath, cfg, rep)
	}

	res, err := bench.NewDriver(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}
	return rep.Report(res)
}

// runSweep runs every configuration of a sweep file. Worker counts the file
// leaves unset fall back to the pool size resolved from flags and environment.
func runSweep(cmd *cobra.Command, path string, base bench.Config, rep bench.Reporter) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sweep, err := bench.LoadSweep(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	configs, err := sweep.Configs()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for i := range configs {
		if configs[i].Workers == 0 {
			configs[i].Workers = base.Workers
		}
	}
	logrus.Infof("Running %d configurations from %s", len(configs), path)
	return bench.RunSweep(cmd.Context(), configs, rep)
}

func newCPUInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpuinfo",
		Short: "Print the host description included in reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := cpuinfo.Detect()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "GOOS: %s\n", info.GOOS)
			fmt.Fprintf(w, "GOARCH: %s\n", info.GOARCH)
			fmt.Fprintf(w, "NumCPU: %d\n", info.NumCPU)
			fmt.Fprintf(w, "GOMAXPROCS: %d\n", info.GOMAXPROCS)
			fmt.Fprintf(w, "Features: %v\n", info.Features)
			return nil
		},
	}
}
