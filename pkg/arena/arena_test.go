package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want int
	}{
		{1, 0},
		{7, 0},
		{8, 0},
		{9, 1},
		{16, 1},
		{17, 2},
		{32, 2},
		{64, 3},
		{65, 4},
		{128, 4},
		{256, 5},
		{512, 6},
		{513, 7},
		{1024, 7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classIndex(tt.n), "classIndex(%d)", tt.n)
		assert.GreaterOrEqual(t, classSize(classIndex(tt.n)), tt.n)
	}
}

func TestAllocZeroed(t *testing.T) {
	t.Parallel()

	a := New()

	buf := a.Alloc(100)
	require.Len(t, buf, 100)

	for i, b := range buf {
		require.Zero(t, b, "byte %d", i)
	}
}

func TestAllocDoesNotOverlap(t *testing.T) {
	t.Parallel()

	a := New()

	first := a.Alloc(24)
	second := a.Alloc(24)

	for i := range first {
		first[i] = 0xAA
	}

	for _, b := range second {
		assert.Zero(t, b)
	}
}

func TestAllocRoundsWithinClassChunk(t *testing.T) {
	t.Parallel()

	a := New()

	// 24 bytes rounds to the 32-byte class; a chunk fits exactly
	// ChunkSize/32 of them before a second chunk appears.
	perChunk := ChunkSize / 32
	for i := 0; i < perChunk; i++ {
		a.Alloc(24)
	}

	st := a.Stats()
	cls := st.Classes[classIndex(24)]
	assert.Equal(t, 1, cls.Chunks)
	assert.Equal(t, ChunkSize, cls.Used)

	a.Alloc(24)

	cls = a.Stats().Classes[classIndex(24)]
	assert.Equal(t, 2, cls.Chunks)
}

func TestAllocClassListsIndependent(t *testing.T) {
	t.Parallel()

	a := New()
	a.Alloc(8)
	a.Alloc(50)
	a.Alloc(1000)

	st := a.Stats()
	assert.Equal(t, 1, st.Classes[0].Chunks)
	assert.Equal(t, 1, st.Classes[3].Chunks)
	assert.Equal(t, 1, st.Classes[7].Chunks)
	assert.Equal(t, 8+64+1024, st.TotalUsed())
}

func TestAllocOversized(t *testing.T) {
	t.Parallel()

	a := New()

	big := a.Alloc(MaxClassSize + 1)
	require.Len(t, big, MaxClassSize+1)

	// Each oversized request gets its own dedicated chunk, sized exactly.
	a.Alloc(4096)

	cls := a.Stats().Classes[oversizedList]
	assert.Equal(t, 2, cls.Chunks)
	assert.Equal(t, MaxClassSize+1+4096, cls.Used)
	assert.Equal(t, cls.Used, cls.Reserved)
}

func TestAllocNonPositive(t *testing.T) {
	t.Parallel()

	a := New()
	assert.Nil(t, a.Alloc(0))
	assert.Nil(t, a.Alloc(-5))
}

func TestReleaseDropsEverything(t *testing.T) {
	t.Parallel()

	a := New()
	a.Alloc(64)
	a.Alloc(2048)

	a.Release()

	assert.True(t, a.Released())
	assert.Zero(t, a.Stats().TotalReserved())
	assert.PanicsWithValue(t, "arena: use of released arena", func() {
		a.Alloc(8)
	})
}

func TestStatsUsedNeverExceedsReserved(t *testing.T) {
	t.Parallel()

	a := New()
	for n := 1; n <= 2000; n += 13 {
		a.Alloc(n)
	}

	st := a.Stats()
	assert.LessOrEqual(t, st.TotalUsed(), st.TotalReserved())

	for idx, cls := range st.Classes {
		assert.LessOrEqual(t, cls.Used, cls.Reserved, "class %d", idx)
	}
}
