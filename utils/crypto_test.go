package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	encrypted, err := EncryptString("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	assert.NotEqual(t, "JBSWY3DPEHPK3PXP", encrypted)

	decrypted, err := DecryptString(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", decrypted)
}

func TestEncryptProducesDistinctCiphertexts(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	a, err := EncryptString("same secret")
	require.NoError(t, err)
	b, err := EncryptString("same secret")
	require.NoError(t, err)

	// Random nonce per encryption
	assert.NotEqual(t, a, b)
}

func TestDecryptRejectsGarbage(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	_, err := DecryptString("not-base64-at-all!!!")
	assert.Error(t, err)
}

func TestEncryptRequiresKey(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "")

	_, err := EncryptString("secret")
	assert.Error(t, err)
}
