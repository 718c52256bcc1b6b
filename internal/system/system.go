package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
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
		if latestFile == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s files found in %s", strings.Join(exts, "/"), dir)
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

// TimestampedPath builds dir/<name>_<timestamp><ext>, with spaces in name
// replaced by underscores.
func TimestampedPath(dir, name, ext string, now time.Time) string {
	clean := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if clean == "" {
		clean = "scenario"
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", clean, now.Format("2006-01-02_15-04-05"), ext))
}

// MemoryStats is a snapshot of this process's memory use.
type MemoryStats struct {
	RSS uint64
	VMS uint64
}

// ProcessMemory reads the resident and virtual size of the current process.
func ProcessMemory() (MemoryStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return MemoryStats{}, fmt.Errorf("open process: %w", err)
	}
	info, err := p.MemoryInfo()
	if err != nil {
		return MemoryStats{}, fmt.Errorf("memory info: %w", err)
	}
	return MemoryStats{RSS: info.RSS, VMS: info.VMS}, nil
}
