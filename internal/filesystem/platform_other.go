//go:build !linux && !darwin && !windows

package filesystem

import (
	"os"
	"time"
)

// getAccessTime is not available on this platform
func getAccessTime(info os.FileInfo) time.Time {
	return time.Time{}
}
