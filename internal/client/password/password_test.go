package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashProducesDistinctVerifyingDigests(t *testing.T) {
	d1, err := Hash("secret1")
	require.NoError(t, err)
	d2, err := Hash("secret1")
	require.NoError(t, err)

	// Distinct salts, both verify against the original password.
	require.NotEqual(t, d1, d2)
	require.True(t, Verify("secret1", d1))
	require.True(t, Verify("secret1", d2))
}

func TestVerifyRejectsOtherPasswords(t *testing.T) {
	digest, err := Hash("secret1")
	require.NoError(t, err)

	require.False(t, Verify("secret2", digest))
	require.False(t, Verify("", digest))
	require.False(t, Verify("SECRET1", digest))
}

func TestVerifyMalformedDigest(t *testing.T) {
	// A corrupted record must verify false, never panic.
	require.False(t, Verify("secret1", "not-a-bcrypt-digest"))
	require.False(t, Verify("secret1", ""))
}
