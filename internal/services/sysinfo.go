package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

const bytesPerGB = 1024 * 1024 * 1024

// PsutilSystemInfo collects system statistics via gopsutil.
type PsutilSystemInfo struct {
	// cpuSampleInterval is how long the CPU percentage is sampled for.
	cpuSampleInterval time.Duration
}

// NewPsutilSystemInfo creates a system info provider backed by gopsutil.
func NewPsutilSystemInfo() *PsutilSystemInfo {
	return &PsutilSystemInfo{cpuSampleInterval: time.Second}
}

// CPUUsage samples overall CPU utilization and reports the logical core count.
func (s *PsutilSystemInfo) CPUUsage(ctx context.Context) (float64, int, error) {
	percents, err := cpu.PercentWithContext(ctx, s.cpuSampleInterval, false)
	if err != nil {
		return 0, 0, fmt.Errorf("cpu sampling failed: %w", err)
	}
	if len(percents) == 0 {
		return 0, 0, fmt.Errorf("cpu sampling returned no data")
	}

	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, 0, fmt.Errorf("cpu count failed: %w", err)
	}

	return percents[0], cores, nil
}

// MemoryUsage reports virtual memory usage in GB and percent.
func (s *PsutilSystemInfo) MemoryUsage(ctx context.Context) (float64, float64, float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("memory query failed: %w", err)
	}
	return float64(vm.Used) / bytesPerGB, float64(vm.Total) / bytesPerGB, vm.UsedPercent, nil
}

// DiskUsage reports root filesystem usage in GB and percent.
func (s *PsutilSystemInfo) DiskUsage(ctx context.Context) (float64, float64, float64, error) {
	du, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return 0, 0, 0, fmt.Errorf("disk query failed: %w", err)
	}
	return float64(du.Used) / bytesPerGB, float64(du.Total) / bytesPerGB, du.UsedPercent, nil
}

// SystemInfo builds a multi-line summary of OS, architecture, CPU, and
// memory.
func (s *PsutilSystemInfo) SystemInfo(ctx context.Context) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("host query failed: %w", err)
	}

	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return "", fmt.Errorf("cpu count failed: %w", err)
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("memory query failed: %w", err)
	}

	summary := "System Information:\n"
	summary += fmt.Sprintf("  OS: %s %s\n", info.Platform, info.PlatformVersion)
	summary += fmt.Sprintf("  Kernel: %s\n", info.KernelVersion)
	summary += fmt.Sprintf("  Architecture: %s\n", info.KernelArch)
	summary += fmt.Sprintf("  CPU Cores: %d\n", cores)
	summary += fmt.Sprintf("  Memory: %.1fGB", float64(vm.Total)/bytesPerGB)

	return summary, nil
}
