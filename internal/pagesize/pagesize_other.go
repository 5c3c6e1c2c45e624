// pagesize_other.go
//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package pagesize

import "os"

// On unsupported platforms, fall back to the runtime's view
func osPageSize() int {
	return os.Getpagesize()
}
