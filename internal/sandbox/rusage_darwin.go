// internal/sandbox/rusage_darwin.go

//go:build darwin

package sandbox

import (
	"os"
	"syscall"
)

// peakMemoryKB returns the child's maximum resident set size. macOS reports
// ru_maxrss in bytes.
func peakMemoryKB(ps *os.ProcessState) int64 {
	if ru, ok := ps.SysUsage().(*syscall.Rusage); ok && ru != nil {
		return int64(ru.Maxrss) / 1024
	}
	return -1
}
