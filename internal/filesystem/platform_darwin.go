//go:build darwin

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getAccessTime gets the access time from FileInfo (macOS)
func getAccessTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec).UTC()
}
