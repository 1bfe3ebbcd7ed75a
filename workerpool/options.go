// File: workerpool/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package workerpool

import "runtime"

const minWorkers = 2

type config struct {
	workers int
	pin     bool
}

func defaultConfig() config {
	n := runtime.NumCPU()
	if n < minWorkers {
		n = minWorkers
	}
	return config{workers: n}
}

// Option configures a Pool.
type Option func(*config)

// WithWorkers sets the worker count. Values below one fall back to the
// default sizing.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// WithAffinity pins each worker to a CPU core (Linux; no-op elsewhere).
func WithAffinity() Option {
	return func(c *config) {
		c.pin = true
	}
}
