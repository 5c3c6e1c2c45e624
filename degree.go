package diskbtree

import "diskbtree/internal/pagesize"

const (
	// nodeHeaderSize is the simulated per-node page header: ID(8) + Flags(4) +
	// NumKeys(4) + Reserved(8)
	nodeHeaderSize = 24
	childIDSize    = 8
	defaultKeySize = 8
)

// DegreeForPage returns the largest minimum degree t whose full node
// (2t-1 keys of keySize bytes plus 2t child IDs and a header) fits in one
// page of pageSize bytes. pageSize <= 0 uses the OS page size and
// keySize <= 0 assumes 8-byte keys. The result is never below MinDegree.
func DegreeForPage(pageSize, keySize int) int {
	if pageSize <= 0 {
		pageSize = pagesize.Get()
	}
	if keySize <= 0 {
		keySize = defaultKeySize
	}

	// (2t-1)*keySize + 2t*childIDSize + header <= pageSize
	t := (pageSize - nodeHeaderSize + keySize) / (2*keySize + 2*childIDSize)
	return max(t, MinDegree)
}
