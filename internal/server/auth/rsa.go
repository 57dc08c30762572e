package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"

	"github.com/parksujin/lifeshare/internal/common"
)

// rsaKeyBits matches the key strength the product shipped with. Below current
// recommendations; do not change without a coordinated client update.
const rsaKeyBits = 1024

// KeyProvider holds the process-wide RSA keypair used to protect login
// payloads. The pair is generated once at construction (or loaded from
// operator-supplied base64 DER strings) and never rotated while the process
// runs, so concurrent reads need no locking.
type KeyProvider struct {
	publicKey  *rsa.PublicKey
	privateKey *rsa.PrivateKey
}

// NewKeyProvider generates a fresh keypair from a cryptographically secure
// random source.
func NewKeyProvider() (*KeyProvider, error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("generate rsa key: %w", err)
	}
	return &KeyProvider{publicKey: &key.PublicKey, privateKey: key}, nil
}

// NewKeyProviderFromConfig loads a fixed keypair from base64-encoded DER
// strings (PKIX public key, PKCS#8 private key). Both must be supplied and
// must belong to the same pair.
func NewKeyProviderFromConfig(publicB64, privateB64 string) (*KeyProvider, error) {
	pubDER, err := base64.StdEncoding.DecodeString(publicB64)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	pub, err := x509.ParsePKIXPublicKey(pubDER)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not RSA")
	}

	privDER, err := base64.StdEncoding.DecodeString(privateB64)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}
	priv, err := x509.ParsePKCS8PrivateKey(privDER)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	rsaPriv, ok := priv.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}

	if !rsaPub.Equal(&rsaPriv.PublicKey) {
		return nil, fmt.Errorf("public key does not match private key")
	}

	return &KeyProvider{publicKey: rsaPub, privateKey: rsaPriv}, nil
}

// PublicKey returns the base64-encoded DER (PKIX) form of the public key.
// Stable for the process lifetime.
func (p *KeyProvider) PublicKey() (string, error) {
	der, err := x509.MarshalPKIXPublicKey(p.publicKey)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}

// Encrypt encrypts plaintext with the public key (PKCS#1 v1.5) and returns
// base64 ciphertext. Provided for clients and tests; the server itself only
// decrypts.
func (p *KeyProvider) Encrypt(plaintext string) (string, error) {
	ct, err := rsa.EncryptPKCS1v15(rand.Reader, p.publicKey, []byte(plaintext))
	if err != nil {
		return "", common.ErrDecryptionFailed
	}
	return base64.StdEncoding.EncodeToString(ct), nil
}

// Decrypt decrypts base64 ciphertext with the private key. Every failure
// (corrupt base64, padding, wrong key) collapses into the same opaque error
// so the network boundary cannot be used as a padding oracle.
func (p *KeyProvider) Decrypt(ciphertextB64 string) (string, error) {
	ct, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}
	pt, err := rsa.DecryptPKCS1v15(rand.Reader, p.privateKey, ct)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}
	return string(pt), nil
}
