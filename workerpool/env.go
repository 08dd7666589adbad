// Copyright 2025 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// SizeFromEnv returns the pool size requested through MATBENCH_WORKERS.
// An unset or empty variable yields 0, which New turns into GOMAXPROCS.
// Anything other than a positive integer is an error.
func SizeFromEnv() (int, error) {
	val := strings.TrimSpace(os.Getenv(EnvWorkers))
	if val == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("workerpool: %s=%q must be a positive integer", EnvWorkers, val)
	}
	return n, nil
}
