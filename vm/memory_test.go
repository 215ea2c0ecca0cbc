package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_StoreLoad(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	assert.True(m.Store(100, 42))

	val, ok := m.Load(100)
	assert.True(ok)
	assert.Equal(int32(42), val)
	assert.Equal(1, m.Len())
}

func TestMemory_Load_Unset(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	val, ok := m.Load(100)
	assert.False(ok)
	assert.Equal(int32(0), val)
}

func TestMemory_Store_Bounds(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	assert.False(m.Store(-1, 1))
	assert.False(m.Store(MEMORY_LIMIT, 1))
	assert.True(m.Store(MEMORY_LIMIT-1, 1))
	assert.True(m.Store(0, 1))
	assert.Equal(2, m.Len())
}

func TestMemory_Addresses_Sorted(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	m.Store(300, 3)
	m.Store(100, 1)
	m.Store(200, 2)

	assert.Equal([]int32{100, 200, 300}, m.Addresses())
}

func TestMemory_Reset(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	m.Store(1, 1)
	m.Store(2, 2)

	m.Reset()
	assert.Equal(0, m.Len())

	_, ok := m.Load(1)
	assert.False(ok)
}
