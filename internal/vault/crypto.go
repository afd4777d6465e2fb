package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// errCiphertextTooShort is returned by open when ciphertext is shorter
// than a GCM nonce, which never happens for data produced by seal.
var errCiphertextTooShort = errors.New("vault: ciphertext shorter than nonce")

// errKeyLength is returned when a loaded key file decodes to the wrong
// number of bytes for AES-256.
var errKeyLength = errors.New("vault: decoded key is not 32 bytes")

// pbkdf2Iterations follows current PBKDF2-HMAC-SHA256 guidance for a
// password-derived AEAD key. Each vault uses its own random salt rather
// than a fixed one (see DESIGN.md).
const pbkdf2Iterations = 100_000

const keyLen = 32 // AES-256
const saltLen = 16

// deriveKey derives a 32-byte AES key from a password and salt via
// PBKDF2-HMAC-SHA256.
func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLen, sha256.New)
}

// randomSalt generates a fresh random salt for a new vault.
func randomSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// randomKey generates a fresh random AES-256 key for a vault opened
// without a password (session-only confidentiality, key never
// persisted).
func randomKey() ([]byte, error) {
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// seal encrypts plaintext under key using AES-256-GCM with a random
// nonce prepended to the ciphertext.
func seal(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// open decrypts ciphertext (nonce || sealed) produced by seal.
func open(key, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errCiphertextTooShort
	}

	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, sealed, nil)
}
