// Package api
// Author: momentics <momentics@gmail.com>
//
// Stats contract shared by components that expose internal counters.

package api

// StatsProvider exposes component counters as a flat name/value map.
type StatsProvider interface {
	Stats() map[string]int64
}
