package passhash

import (
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/dmitrijs2005/banksim/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef0123")

	h1, err := Hash("correct-horse-battery", salt, 5)
	require.NoError(t, err)
	h2, err := Hash("correct-horse-battery", salt, 5)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, sha256.Size)
}

func TestHash_IterationsChangeResult(t *testing.T) {
	salt := []byte("0123456789abcdef0123")

	h1, err := Hash("pw", salt, 1)
	require.NoError(t, err)
	h2, err := Hash("pw", salt, 2)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHash_InvalidIterations(t *testing.T) {
	_, err := Hash("pw", []byte("salt"), 0)
	assert.Error(t, err)
	_, err = Hash("pw", []byte("salt"), -3)
	assert.Error(t, err)
}

func TestVerify_RoundTrip(t *testing.T) {
	salt := NewSalt(DefaultSaltLength)

	h, err := Hash("correct-horse-battery", salt, 3)
	require.NoError(t, err)

	ok, err := Verify("correct-horse-battery", salt, h, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("wrong", salt, h, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_WrongIterationCountFails(t *testing.T) {
	salt := NewSalt(DefaultSaltLength)

	h, err := Hash("pw", salt, 3)
	require.NoError(t, err)

	ok, err := Verify("pw", salt, h, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_LengthMismatchIsIntegrityError(t *testing.T) {
	salt := NewSalt(DefaultSaltLength)

	ok, err := Verify("pw", salt, []byte("short"), 1)
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDataIntegrity))
}

func TestNewSalt_Random(t *testing.T) {
	assert.NotEqual(t, NewSalt(DefaultSaltLength), NewSalt(DefaultSaltLength))
}
