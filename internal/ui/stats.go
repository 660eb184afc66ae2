package ui

import "sync/atomic"

type Stats struct {
	TotalPanels   atomic.Int64
	TotalBytes    atomic.Int64
	TotalEpisodes atomic.Int64
	Failed        atomic.Int64
}
