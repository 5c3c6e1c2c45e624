// pagesize_unix.go
//go:build linux || darwin || freebsd || netbsd || openbsd

package pagesize

import "golang.org/x/sys/unix"

func osPageSize() int {
	return unix.Getpagesize()
}
