package encr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	enc := New("Kettle")

	encrypted, err := enc.Encrypt("password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encrypted, Prefix))
	assert.NotContains(t, encrypted, "password")

	plain, err := enc.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "password", plain)
}

func TestEncryptSkipsBlankAndVariables(t *testing.T) {
	enc := New("Kettle")

	for _, v := range []string{"", "${KERBEROS_PASSWORD}", "pre-${x}"} {
		out, err := enc.Encrypt(v)
		require.NoError(t, err)
		assert.Equal(t, v, out)
	}
}

func TestDecryptPlainValue(t *testing.T) {
	out, err := New("Kettle").Decrypt("not-encrypted")
	require.NoError(t, err)
	assert.Equal(t, "not-encrypted", out)
}

func TestDecryptWrongSeed(t *testing.T) {
	encrypted, err := New("Kettle").Encrypt("secret")
	require.NoError(t, err)

	_, err = New("other").Decrypt(encrypted)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecryptMalformed(t *testing.T) {
	enc := New("Kettle")

	_, err := enc.Decrypt(Prefix + "zz")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = enc.Decrypt(Prefix + "abcd")
	assert.ErrorIs(t, err, ErrMalformed)
}
