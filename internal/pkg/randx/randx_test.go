package randx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationCodeShape(t *testing.T) {
	seen := make(map[string]struct{})

	for range 50 {
		code, err := VerificationCode()
		require.NoError(t, err)
		assert.True(t, IsValidVerificationCode(code), "generated code %q should validate", code)
		seen[code] = struct{}{}
	}

	// 50 draws from a million-value space collapsing to a handful would
	// indicate a broken generator.
	assert.Greater(t, len(seen), 40)
}

func TestIsValidVerificationCode(t *testing.T) {
	assert.True(t, IsValidVerificationCode("012345"))
	assert.False(t, IsValidVerificationCode("12345"))
	assert.False(t, IsValidVerificationCode("1234567"))
	assert.False(t, IsValidVerificationCode("12a456"))
	assert.False(t, IsValidVerificationCode(""))
	assert.False(t, IsValidVerificationCode("12 456"))
}

func TestNewIDIsValidAndUnique(t *testing.T) {
	a := NewID()
	b := NewID()

	assert.True(t, IsValidID(a))
	assert.True(t, IsValidID(b))
	assert.NotEqual(t, a, b)
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("11111111-2222-3333-4444-555555555555"))
	assert.False(t, IsValidID("not-a-uuid"))
	assert.False(t, IsValidID(""))
}
