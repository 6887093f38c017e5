package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
)

// testSecret returns the secret 00 01 02 ... 1f.
func testSecret(t *testing.T) keysDomain.Secret {
	t.Helper()
	b := make([]byte, keysDomain.SecretSize)
	for i := range b {
		b[i] = byte(i)
	}
	secret, err := keysDomain.NewSecret(b)
	require.NoError(t, err)
	return secret
}

func otherSecret(t *testing.T) keysDomain.Secret {
	t.Helper()
	b := make([]byte, keysDomain.SecretSize)
	for i := range b {
		b[i] = byte(0xff - i)
	}
	secret, err := keysDomain.NewSecret(b)
	require.NoError(t, err)
	return secret
}

// requireSameShape asserts equal rune length and per-position character class,
// with non-alphanumeric characters unchanged.
func requireSameShape(t *testing.T, in, out string) {
	t.Helper()
	a, b := []rune(in), []rune(out)
	require.Len(t, b, len(a), "length of %q vs %q", in, out)
	for i := range a {
		require.Equal(t, ClassOf(a[i]), ClassOf(b[i]), "class at %d of %q vs %q", i, in, out)
		if ClassOf(a[i]) == ClassOther {
			require.Equal(t, a[i], b[i], "other char at %d of %q vs %q", i, in, out)
		}
	}
}
