package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "onsightnow/pkg/domain-errors"
)

func TestGenerate(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)
	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, Verify("s3cret", hash))

	err = Verify("wrong", hash)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	err = Verify("s3cret", "not-a-hash")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestHash_Invalid(t *testing.T) {
	_, err := Hash("", 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = Hash(strings.Repeat("x", 73), bcrypt.MinCost)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("client", "client"))
	assert.False(t, Equal("client", "Client"))
	assert.False(t, Equal("client", ""))
}
