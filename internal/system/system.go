package system

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// FindLatest returns the most recently modified file in dir whose name ends
// with one of exts (case-insensitive).
func FindLatest(dir string, exts ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExt(f.Name(), exts) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s files in %s", strings.Join(exts, "/"), dir)
	}
	return latestFile, nil
}

func hasExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// BestH264Encoder picks a hardware H.264 encoder when ffmpeg offers one.
func BestH264Encoder() string {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}

// Stats is a snapshot of the host for the preview report.
type Stats struct {
	LogicalCPUs  int
	TotalMemory  uint64
	AvailMemory  uint64
	UsedPercent  float64
	GoMaxProcs   int
	NumGoroutine int
}

// HostStats reads CPU and memory figures. Missing figures are left zero.
func HostStats() (Stats, error) {
	s := Stats{
		GoMaxProcs:   runtime.GOMAXPROCS(0),
		NumGoroutine: runtime.NumGoroutine(),
	}

	n, err := cpu.Counts(true)
	if err != nil {
		return s, fmt.Errorf("cpu counts: %w", err)
	}
	s.LogicalCPUs = n

	vm, err := mem.VirtualMemory()
	if err != nil {
		return s, fmt.Errorf("virtual memory: %w", err)
	}
	s.TotalMemory = vm.Total
	s.AvailMemory = vm.Available
	s.UsedPercent = vm.UsedPercent
	return s, nil
}

// DefaultWorkers sizes the frame worker pool: one per logical CPU, but at
// least one and never more than GOMAXPROCS.
func DefaultWorkers() int {
	s, err := HostStats()
	n := s.LogicalCPUs
	if err != nil || n <= 0 {
		n = runtime.NumCPU()
	}
	return max(1, min(n, runtime.GOMAXPROCS(0)))
}

func (s Stats) String() string {
	return fmt.Sprintf("cpus=%d gomaxprocs=%d mem=%.1f/%.1fGiB (%.0f%% used)",
		s.LogicalCPUs, s.GoMaxProcs,
		float64(s.TotalMemory-s.AvailMemory)/(1<<30), float64(s.TotalMemory)/(1<<30), s.UsedPercent)
}
