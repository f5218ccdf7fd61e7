//go:build windows

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getAccessTime gets the access time from FileInfo (Windows)
func getAccessTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}
	}
	return time.Unix(0, stat.LastAccessTime.Nanoseconds()).UTC()
}
