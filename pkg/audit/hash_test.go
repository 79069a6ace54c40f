package audit_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dmitrymomot/inputguard/pkg/audit"
)

func TestNewKeyedHasher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int
		err  bool
	}{
		{"too short", 15, true},
		{"minimum", 16, false},
		{"maximum", 64, false},
		{"too long", 65, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := audit.NewKeyedHasher(bytes.Repeat([]byte{'k'}, tt.size))
			if tt.err {
				assert.ErrorIs(t, err, audit.ErrInvalidHashKey)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Len(t, h.Hash("user-1"), 64)
		})
	}
}

func TestKeyedHasherIsKeyed(t *testing.T) {
	t.Parallel()

	a, err := audit.NewKeyedHasher(bytes.Repeat([]byte{'a'}, 32))
	require.NoError(t, err)
	b, err := audit.NewKeyedHasher(bytes.Repeat([]byte{'b'}, 32))
	require.NoError(t, err)

	assert.Equal(t, a.Hash("user-1"), a.Hash("user-1"))
	assert.NotEqual(t, a.Hash("user-1"), b.Hash("user-1"))
	assert.NotEqual(t, a.Hash("user-1"), a.Hash("user-2"))
}

func TestKeyedHasherKeyIsCopied(t *testing.T) {
	t.Parallel()

	key := bytes.Repeat([]byte{'a'}, 32)
	h, err := audit.NewKeyedHasher(key)
	require.NoError(t, err)
	before := h.Hash("x")

	key[0] = 'z'
	assert.Equal(t, before, h.Hash("x"))
}

func TestKeyedHasherDeterministic(t *testing.T) {
	t.Parallel()

	h, err := audit.NewKeyedHasher(bytes.Repeat([]byte{'k'}, 32))
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		id := rapid.String().Draw(t, "id")
		if h.Hash(id) != h.Hash(id) {
			t.Fatalf("hash of %q is not stable", id)
		}
	})
}
