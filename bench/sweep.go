// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/matbench/matmul"
)

// Size is one A (M×N) by B (N×K) shape of a sweep.
type Size struct {
	M int `yaml:"m"`
	N int `yaml:"n"`
	K int `yaml:"k"`
}

// Sweep is a benchmark plan read from YAML. Every size is run with every
// worker count and strategy:
//
//	sizes:
//	  - {m: 256, n: 256, k: 256}
//	  - {m: 512, n: 512, k: 512}
//	workers: [1, 2, 4, 8]
//	strategies: [static, strips]
//	lower: 0
//	upper: 10
//	seed: 42
type Sweep struct {
	Sizes             []Size   `yaml:"sizes"`
	Workers           []int    `yaml:"workers"`
	Strategies        []string `yaml:"strategies"`
	StripRows         int      `yaml:"strip_rows"`
	TransposeB        bool     `yaml:"transpose_b"`
	Lower             *int64   `yaml:"lower"`
	Upper             *int64   `yaml:"upper"`
	Seed              *uint64  `yaml:"seed"`
	IncludeGeneration bool     `yaml:"include_generation"`
	Verify            *bool    `yaml:"verify"`
}

// LoadSweep decodes a Sweep, rejecting unknown keys.
func LoadSweep(r io.Reader) (Sweep, error) {
	var s Sweep
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Sweep{}, fmt.Errorf("empty sweep file: %w", ErrInvalidConfig)
		}
		return Sweep{}, fmt.Errorf("parsing sweep: %w", err)
	}
	return s, nil
}

// Configs expands the sweep into one Config per (size, workers, strategy),
// in that nesting order. Duplicate worker counts are run once. A sweep
// without workers uses the default pool size; one without strategies uses
// static partitioning; a bound the sweep leaves out keeps its default
// (lower 0, upper 10).
func (s Sweep) Configs() ([]Config, error) {
	if len(s.Sizes) == 0 {
		return nil, fmt.Errorf("sweep has no sizes: %w", ErrInvalidConfig)
	}

	workers := lo.Uniq(s.Workers)
	if len(workers) == 0 {
		workers = []int{0}
	}
	names := s.Strategies
	if len(names) == 0 {
		names = []string{matmul.StrategyStatic.String()}
	}
	strategies := make([]matmul.Strategy, 0, len(names))
	for _, name := range lo.Uniq(names) {
		st, err := matmul.ParseStrategy(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		strategies = append(strategies, st)
	}

	base := DefaultConfig()
	if s.Lower != nil {
		base.Lower = *s.Lower
	}
	if s.Upper != nil {
		base.Upper = *s.Upper
	}
	if s.Seed != nil {
		base.Seed, base.HasSeed = *s.Seed, true
	}
	if s.StripRows > 0 {
		base.StripRows = s.StripRows
	}
	base.TransposeB = s.TransposeB
	base.IncludeGeneration = s.IncludeGeneration
	if s.Verify != nil {
		base.Verify = *s.Verify
	}

	var out []Config
	for _, size := range s.Sizes {
		for _, w := range workers {
			for _, st := range strategies {
				cfg := base
				cfg.M, cfg.N, cfg.K = size.M, size.N, size.K
				cfg.Workers = w
				cfg.Strategy = st
				if err := cfg.Validate(); err != nil {
					return nil, err
				}
				out = append(out, cfg)
			}
		}
	}
	return out, nil
}

// RunSweep runs every config in order, each on its own pool sized by
// Config.Workers, and reports each result as soon as it is available.
// It stops at the first error.
func RunSweep(ctx context.Context, configs []Config, rep Reporter, opts ...DriverOption) error {
	for i, cfg := range configs {
		res, err := NewDriver(cfg, opts...).Run(ctx)
		if err != nil {
			return fmt.Errorf("run %d (%dx%dx%d, workers=%d, %s): %w",
				i+1, cfg.M, cfg.N, cfg.K, cfg.Workers, cfg.Strategy, err)
		}
		if err := rep.Report(res); err != nil {
			return err
		}
	}
	return nil
}
