package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/parksujin/lifeshare/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyProvider_RoundTrip(t *testing.T) {
	t.Parallel()

	p, err := NewKeyProvider()
	require.NoError(t, err)

	inputs := []string{
		"password1!",
		"short",
		"한국어 비밀번호",
		"emoji ✓ αβγ",
	}
	for _, in := range inputs {
		ct, err := p.Encrypt(in)
		require.NoError(t, err, "encrypt %q", in)

		pt, err := p.Decrypt(ct)
		require.NoError(t, err, "decrypt %q", in)
		assert.Equal(t, in, pt)
	}
}

func TestKeyProvider_PublicKeyStable(t *testing.T) {
	t.Parallel()

	p, err := NewKeyProvider()
	require.NoError(t, err)

	k1, err := p.PublicKey()
	require.NoError(t, err)
	k2, err := p.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.NotEmpty(t, k1)
}

func TestKeyProvider_DecryptFailuresAreOpaque(t *testing.T) {
	t.Parallel()

	p, err := NewKeyProvider()
	require.NoError(t, err)

	other, err := NewKeyProvider()
	require.NoError(t, err)

	wrongKeyCT, err := other.Encrypt("secret")
	require.NoError(t, err)

	inputs := []string{
		"not base64 !!!",
		base64.StdEncoding.EncodeToString([]byte("garbage bytes")),
		wrongKeyCT,
		"",
	}
	for _, in := range inputs {
		out, err := p.Decrypt(in)
		assert.True(t, errors.Is(err, common.ErrDecryptionFailed), "input %q: got %v", in, err)
		assert.Empty(t, out)
	}
}

func TestNewKeyProviderFromConfig(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	p, err := NewKeyProviderFromConfig(
		base64.StdEncoding.EncodeToString(pubDER),
		base64.StdEncoding.EncodeToString(privDER),
	)
	require.NoError(t, err)

	ct, err := p.Encrypt("fixed-pair")
	require.NoError(t, err)
	pt, err := p.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "fixed-pair", pt)

	// The exposed public key must correspond to the loaded private half.
	exposed, err := p.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pubDER), exposed)
}

func TestNewKeyProviderFromConfig_MismatchedPair(t *testing.T) {
	t.Parallel()

	keyA, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	keyB, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	pubDER, err := x509.MarshalPKIXPublicKey(&keyA.PublicKey)
	require.NoError(t, err)
	privDER, err := x509.MarshalPKCS8PrivateKey(keyB)
	require.NoError(t, err)

	_, err = NewKeyProviderFromConfig(
		base64.StdEncoding.EncodeToString(pubDER),
		base64.StdEncoding.EncodeToString(privDER),
	)
	assert.Error(t, err)
}

func TestNewKeyProviderFromConfig_BadMaterial(t *testing.T) {
	t.Parallel()

	_, err := NewKeyProviderFromConfig("!!!", "!!!")
	assert.Error(t, err)

	_, err = NewKeyProviderFromConfig(
		base64.StdEncoding.EncodeToString([]byte("not a key")),
		base64.StdEncoding.EncodeToString([]byte("not a key")),
	)
	assert.Error(t, err)
}
