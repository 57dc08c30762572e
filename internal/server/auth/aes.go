package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/parksujin/lifeshare/internal/common"
)

// DefaultAESPassphrase is the static passphrase the product has always used
// for equality-searchable field encryption.
const DefaultAESPassphrase = "AES128RDES123456"

// AES128 encrypts and decrypts low-sensitivity fields (e.g. email) with a
// fixed key and a fixed IV derived from the same passphrase, so equal
// plaintexts produce equal ciphertexts and the data layer can search by
// equality. The fixed IV leaks equality of plaintexts; this is a known,
// deliberate property; do not use it for high-sensitivity data.
type AES128 struct {
	key []byte
	iv  []byte
}

// NewAES128 derives the 16-byte key and IV from the passphrase, truncating or
// zero-padding it to the AES block size.
func NewAES128(passphrase string) (*AES128, error) {
	key := make([]byte, aes.BlockSize)
	copy(key, passphrase)
	iv := make([]byte, aes.BlockSize)
	copy(iv, passphrase)
	if _, err := aes.NewCipher(key); err != nil {
		return nil, fmt.Errorf("aes key setup: %w", err)
	}
	return &AES128{key: key, iv: iv}, nil
}

// Encrypt returns the base64 AES-128-CBC ciphertext of plaintext with PKCS#5
// padding. Deterministic for identical inputs.
func (a *AES128) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(a.key)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}

	padded := pkcs5Pad([]byte(plaintext), aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, a.iv).CryptBlocks(ct, padded)

	return base64.StdEncoding.EncodeToString(ct), nil
}

// Decrypt reverses Encrypt. Any failure (bad base64, wrong length, bad
// padding) yields the same opaque error and an empty result.
func (a *AES128) Decrypt(ciphertextB64 string) (string, error) {
	ct, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", common.ErrDecryptionFailed
	}

	block, err := aes.NewCipher(a.key)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}

	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, a.iv).CryptBlocks(pt, ct)

	unpadded, err := pkcs5Unpad(pt, aes.BlockSize)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}
	return string(unpadded), nil
}

func pkcs5Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	padded := make([]byte, len(b)+n)
	copy(padded, b)
	for i := len(b); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs5Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, common.ErrDecryptionFailed
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, common.ErrDecryptionFailed
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, common.ErrDecryptionFailed
		}
	}
	return b[:len(b)-n], nil
}
