package system

import (
	"context"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/TsunoPanda/EikaiwaReview/internal/logger"
)

// ReportStats logs a post-run resource summary: wall time, clips produced,
// logical CPUs, system memory pressure and this process's RSS.
func ReportStats(ctx context.Context, log logger.Logger, elapsed time.Duration, clips int) {
	log.Info(ctx, "--- run stats ---")
	log.Info(ctx, "clips: %d | wall time: %.2fs", clips, elapsed.Seconds())
	if clips > 0 {
		log.Info(ctx, "per clip: %.2fs", elapsed.Seconds()/float64(clips))
	}

	if counts, err := cpu.Counts(true); err == nil {
		log.Info(ctx, "logical CPUs: %d", counts)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		log.Info(ctx, "system memory: %.1f%% of %.1f GiB used",
			vm.UsedPercent, float64(vm.Total)/(1<<30))
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfo(); err == nil {
			log.Info(ctx, "process RSS: %.1f MiB", float64(mi.RSS)/(1<<20))
		}
	}
}
