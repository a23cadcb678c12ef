package ustream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitValidASCII(t *testing.T) {
	s := New()
	off, ok := s.Init([]byte("abc"))
	require.True(t, ok)
	assert.Equal(t, 0, off)
	assert.Equal(t, Valid, s.StreamStatus())
	assert.Equal(t, -1, s.InvalidOffset())
}

func TestInitRejectsInvalidUTF8(t *testing.T) {
	s := New()
	off, ok := s.Init([]byte{'a', 0xff, 'b'})
	require.False(t, ok)
	assert.Equal(t, 1, off)
	assert.Equal(t, Invalid, s.StreamStatus())
}

func TestInitAcrossLongASCIIWindow(t *testing.T) {
	buf := make([]byte, 130)
	for i := range buf {
		buf[i] = 'x'
	}
	buf[129] = 0xff
	s := New()
	off, ok := s.Init(buf)
	require.False(t, ok)
	assert.Equal(t, 129, off)
}

func TestInvalidStreamPanics(t *testing.T) {
	s := New()
	_, ok := s.Init([]byte{0xff})
	require.False(t, ok)
	assert.Panics(t, func() { s.Position() })
	assert.Panics(t, func() { s.Advance() })
}

func TestPeekAndAdvanceMultibyte(t *testing.T) {
	s := New()
	_, ok := s.Init([]byte("aéb")) // a, é (2 bytes), b
	require.True(t, ok)

	assert.Equal(t, 'a', s.Peek(0))
	assert.Equal(t, rune('é'), s.Peek(1))
	assert.Equal(t, 'b', s.Peek(2))

	assert.Equal(t, 1, s.Advance()) // consume 'a'
	assert.Equal(t, rune('é'), s.Peek(0))
	assert.Equal(t, 2, s.Advance()) // consume 'é'
	assert.Equal(t, 'b', s.Peek(0))
}

func TestLineColumnTracking(t *testing.T) {
	s := New()
	_, ok := s.Init([]byte("ab\ncd"))
	require.True(t, ok)

	s.Advance() // a
	s.Advance() // b
	assert.Equal(t, 1, s.Line())
	assert.Equal(t, 3, s.Column())

	s.Advance() // \n
	assert.Equal(t, 2, s.Line())
	assert.Equal(t, 1, s.Column())

	s.Advance() // c
	assert.Equal(t, 2, s.Column())
}

func TestRewindUndoesAdvance(t *testing.T) {
	s := New()
	_, ok := s.Init([]byte("abc"))
	require.True(t, ok)

	s.Advance()
	posAfterFirst := s.Position()
	s.Advance()
	s.Rewind()
	assert.Equal(t, posAfterFirst, s.Position())
	assert.Equal(t, byte('b'), s.Source()[s.Position()])
}

func TestRewindNoopWhenRingEmpty(t *testing.T) {
	s := New()
	_, ok := s.Init([]byte("abc"))
	require.True(t, ok)
	s.Rewind() // no advances yet; must not panic or move
	assert.Equal(t, 0, s.Position())
}

func TestRewindBoundedByRingSize(t *testing.T) {
	s := New()
	data := make([]byte, ringSize+5)
	for i := range data {
		data[i] = 'x'
	}
	_, ok := s.Init(data)
	require.True(t, ok)

	for i := 0; i < ringSize+5; i++ {
		s.Advance()
	}
	// Only the last ringSize advances can be undone.
	for i := 0; i < ringSize; i++ {
		s.Rewind()
	}
	assert.Equal(t, 5, s.Position())
	s.Rewind() // ring now empty; further rewinds are no-ops
	assert.Equal(t, 5, s.Position())
}

func TestEOF(t *testing.T) {
	s := New()
	_, ok := s.Init([]byte("a"))
	require.True(t, ok)
	assert.False(t, s.EOF())
	s.Advance()
	assert.True(t, s.EOF())
	assert.Equal(t, rune(0), s.Peek(0))
	assert.Equal(t, 0, s.Advance())
}

func TestFingerprintStableForSameBytes(t *testing.T) {
	s1, s2 := New(), New()
	_, _ = s1.Init([]byte("same content"))
	_, _ = s2.Init([]byte("same content"))
	assert.Equal(t, s1.Fingerprint(), s2.Fingerprint())

	s3 := New()
	_, _ = s3.Init([]byte("different"))
	assert.NotEqual(t, s1.Fingerprint(), s3.Fingerprint())
}
