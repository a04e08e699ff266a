package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestILPhone05xDash_Bounds(t *testing.T) {
	s := NewILPhone05xDash()
	lo, hi := s.Bounds()
	assert.Equal(t, int64(0), lo)
	assert.Equal(t, int64(99_999_999), hi)
}

func TestILPhone05xDash_IndexToPassword(t *testing.T) {
	s := NewILPhone05xDash()

	p, err := s.IndexToPassword(0)
	require.NoError(t, err)
	assert.Equal(t, "050-0000000", p)

	p, err = s.IndexToPassword(10_000_000)
	require.NoError(t, err)
	assert.Equal(t, "051-0000000", p)

	p, err = s.IndexToPassword(9_999_999)
	require.NoError(t, err)
	assert.Equal(t, "050-9999999", p)
}

func TestILPhone05xDash_OutOfBounds(t *testing.T) {
	s := NewILPhone05xDash()
	_, err := s.IndexToPassword(-1)
	assert.Error(t, err)
	_, err = s.IndexToPassword(100_000_000)
	assert.Error(t, err)
}

func TestILPhone05xDash_Injective(t *testing.T) {
	s := NewILPhone05xDash()
	seen := make(map[string]bool)
	for i := int64(0); i < 25; i++ {
		p, err := s.IndexToPassword(i)
		require.NoError(t, err)
		assert.False(t, seen[p], "duplicate plaintext for index %d", i)
		seen[p] = true
	}
}

func TestRegistry_NewUnknownScheme(t *testing.T) {
	r := NewRegistry()
	_, err := r.New("does-not-exist")
	assert.Error(t, err)
}

func TestRegistry_NewBuiltin(t *testing.T) {
	r := NewRegistry()
	s, err := r.New(NameILPhone05xDash)
	require.NoError(t, err)
	require.NotNil(t, s)
}
