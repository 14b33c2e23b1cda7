// internal/sandbox/rusage_linux.go

//go:build linux

package sandbox

import (
	"os"
	"syscall"
)

// peakMemoryKB returns the child's maximum resident set size. Linux reports
// ru_maxrss in kilobytes.
func peakMemoryKB(ps *os.ProcessState) int64 {
	if ru, ok := ps.SysUsage().(*syscall.Rusage); ok && ru != nil {
		return int64(ru.Maxrss)
	}
	return -1
}
