package main

import (
	"context"
	"time"

	"github.com/ardnew/usblog/logger"
	"github.com/ardnew/usblog/pkg"
)

// TickStats summarizes a tick run.
type TickStats struct {
	Sent    int
	Dropped int
}

// Tick emits "Tick:\t<n>\r\n" through l every interval, with n counting
// up from 0 and wrapping at modulo. It stops after count ticks, or when
// ctx is done if count is 0.
func Tick[T logger.Transport](ctx context.Context, l logger.Logger[T], interval time.Duration, count, modulo int) TickStats {
	var stats TickStats

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	n := 0
	for count == 0 || stats.Sent+stats.Dropped < count {
		select {
		case <-ctx.Done():
			return stats
		case <-ticker.C:
		}

		if l.PrintLine("Tick:\t%d", n) {
			stats.Sent++
		} else {
			stats.Dropped++
			pkg.LogDebug(pkg.ComponentTick, "tick dropped", "tick", n)
		}
		n = (n + 1) % modulo
	}
	return stats
}
