package intern

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternEmptyStringReturnsEmptyID(t *testing.T) {
	p := New()
	assert.Equal(t, Empty, p.Intern(nil))
	assert.Equal(t, Empty, p.Intern([]byte{}))
	assert.Equal(t, 0, p.Len())
}

func TestInternSameBytesYieldsSameID(t *testing.T) {
	p := New()
	a := p.Intern([]byte("hello"))
	b := p.Intern([]byte("hello"))
	assert.Equal(t, a, b)
	assert.Equal(t, 1, p.Len())
}

func TestInternDistinctBytesYieldDistinctIDs(t *testing.T) {
	p := New()
	a := p.Intern([]byte("hello"))
	b := p.Intern([]byte("world"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, p.Len())
}

func TestInternDoesNotAliasCallerBuffer(t *testing.T) {
	p := New()
	buf := []byte("mutate-me")
	id := p.Intern(buf)
	buf[0] = 'X'

	got, ok := p.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "mutate-me", string(got))
}

func TestLookupRoundTrips(t *testing.T) {
	p := New()
	id := p.Intern([]byte("roundtrip"))
	got, ok := p.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "roundtrip", string(got))
}

func TestLookupEmptyID(t *testing.T) {
	p := New()
	got, ok := p.Lookup(Empty)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestLookupInvalidIDFails(t *testing.T) {
	p := New()
	_, ok := p.Lookup(Invalid)
	assert.False(t, ok)

	_, ok = p.Lookup(StringID(999))
	assert.False(t, ok)
}

func TestInternConcurrentSameStringConverges(t *testing.T) {
	p := New()
	const n = 64
	ids := make([]StringID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = p.Intern([]byte("shared"))
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 1, p.Len())
}
