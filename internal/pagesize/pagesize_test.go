package pagesize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	size := Get()
	assert.Positive(t, size)
	assert.Zero(t, size&(size-1), "page size %d should be a power of two", size)
}
