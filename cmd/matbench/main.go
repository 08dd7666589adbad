// Copyright 2025 matbench Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command matbench multiplies two random integer matrices sequentially and
// on a worker pool, then reports speedup, efficiency, throughput, latency per
// task and overhead.
//
// Usage:
//
//	matbench -m 512 -n 512 -k 512 -s 42            # human-readable report
//	matbench -m 512 -n 512 -k 512 --benchmarking   # one CSV line
//	matbench --config sweep.yaml --csv-header      # a sweep, one CSV line per run
//	matbench cpuinfo                               # host description
//
// A is m×n and B is n×k. Without -s a fresh seed is drawn and printed so the
// run can be reproduced. MATBENCH_WORKERS sets the pool size when --workers
// is not given; otherwise the pool has GOMAXPROCS workers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
