// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package cpuinfo describes the host a benchmark ran on: platform, CPU
// count, scheduler parallelism and the SIMD features golang.org/x/sys/cpu
// reports. Benchmark numbers are only comparable between hosts that match.
package cpuinfo

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Info is a snapshot of the host.
type Info struct {
	GOOS       string
	GOARCH     string
	NumCPU     int
	GOMAXPROCS int
	Features   []string // SIMD / arithmetic features, in a fixed order
}

// feature pairs a name with the x/sys/cpu flag that reports it.
type feature struct {
	name string
	has  bool
}

// Detect returns the current host description.
func Detect() Info {
	info := Info{
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}

	var candidates []feature
	switch runtime.GOARCH {
	case "amd64", "386":
		candidates = []feature{
			{"sse2", cpu.X86.HasSSE2},
			{"sse41", cpu.X86.HasSSE41},
			{"sse42", cpu.X86.HasSSE42},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
			{"avx512bw", cpu.X86.HasAVX512BW},
			{"avx512vnni", cpu.X86.HasAVX512VNNI},
		}
	case "arm64":
		candidates = []feature{
			{"asimd", cpu.ARM64.HasASIMD},
			{"asimddp", cpu.ARM64.HasASIMDDP},
			{"asimdhp", cpu.ARM64.HasASIMDHP},
			{"sve", cpu.ARM64.HasSVE},
			{"sve2", cpu.ARM64.HasSVE2},
			{"atomics", cpu.ARM64.HasATOMICS},
		}
	}
	for _, f := range candidates {
		if f.has {
			info.Features = append(info.Features, f.name)
		}
	}
	return info
}

// String renders a one-line summary, e.g.
// "linux/amd64, 16 CPUs, GOMAXPROCS=16, features: sse2 avx2 fma".
func (i Info) String() string {
	features := "none"
	if len(i.Features) > 0 {
		features = strings.Join(i.Features, " ")
	}
	return fmt.Sprintf("%s/%s, %d CPUs, GOMAXPROCS=%d, features: %s",
		i.GOOS, i.GOARCH, i.NumCPU, i.GOMAXPROCS, features)
}
