package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_DeterministicPerSalt(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	k1 := DeriveKey([]byte("correct horse"), salt)
	k2 := DeriveKey([]byte("correct horse"), salt)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 32)

	other, err := NewSalt()
	require.NoError(t, err)
	k3 := DeriveKey([]byte("correct horse"), other)
	assert.NotEqual(t, k1, k3, "different salt must yield a different key")
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	key := DeriveKey([]byte("passphrase"), salt)

	ct, nonce, err := Encrypt([]byte("sk-abc123"), key)
	require.NoError(t, err)
	require.Len(t, nonce, 12)

	pt, err := Decrypt(ct, nonce, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("sk-abc123"), pt)
}

func TestDecrypt_WrongKeyFails(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	key := DeriveKey([]byte("passphrase"), salt)

	ct, nonce, err := Encrypt([]byte("sk-abc123"), key)
	require.NoError(t, err)

	wrong := DeriveKey([]byte("not the passphrase"), salt)
	_, err = Decrypt(ct, nonce, wrong)
	require.Error(t, err)
}
