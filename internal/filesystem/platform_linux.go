//go:build linux

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getAccessTime gets the access time from FileInfo (Linux)
func getAccessTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(stat.Atim.Sec), int64(stat.Atim.Nsec)).UTC()
}
