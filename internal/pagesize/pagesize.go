// Package pagesize reports the operating system page size, which the tree
// uses as its simulated block size when deriving a minimum degree.
package pagesize

// Fallback is used when the platform reports a non-positive page size.
const Fallback = 4096

// Get returns the OS page size in bytes
func Get() int {
	if n := osPageSize(); n > 0 {
		return n
	}
	return Fallback
}
