// internal/sandbox/rusage_other.go

//go:build !linux && !darwin

package sandbox

import "os"

func peakMemoryKB(*os.ProcessState) int64 {
	return -1
}
