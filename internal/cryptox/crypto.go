// Package cryptox implements the credential primitives shared by the
// server and the CLI: salt generation, Argon2id key derivation,
// constant-time secret comparison, client-side entry sealing, and secure
// wiping of transient secret buffers.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// KDF parameters are a fixed contract: changing any of them invalidates
// every stored credential, so they must be versioned if ever changed.
// The underlying argon2 package implements version 1.3 (0x13).
const (
	SaltLength      = 16
	KDFInputLength  = 32
	KDFOutputLength = 32
	KDFParallelism  = 4
	KDFMemoryKiB    = 1024
	KDFIterations   = 10
)

// GenRandomBytes returns n bytes from the cryptographically secure
// generator.
func GenRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("error reading random bytes: %w", err)
	}
	return b, nil
}

// GenSalt returns a fresh per-credential salt of SaltLength bytes.
func GenSalt() ([]byte, error) {
	return GenRandomBytes(SaltLength)
}

// DeriveKey computes the Argon2id key for the given secret and salt.
// The secret must already be validated to KDFInputLength bytes by the
// caller. The computation is memory-hard and takes tens of milliseconds;
// it cannot be cancelled mid-flight, so callers budget for its latency.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, KDFIterations, KDFMemoryKiB, KDFParallelism, KDFOutputLength)
}

// SecretsEqual compares two equal-length secret buffers without
// data-dependent timing.
func SecretsEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// DeriveMasterKey turns the master password into the 256-bit key the
// client uses for entry encryption. The key never leaves the client.
func DeriveMasterKey(password []byte) []byte {
	hash := sha256.Sum256(password)
	return hash[:]
}

// MakeVerifier derives the KDFInputLength-byte secret the client presents
// to the server in place of the master password. The server only ever sees
// this verifier, never the master key.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// Seal encrypts plaintext with AES-256-GCM under the given key and
// returns nonce||ciphertext as a single blob.
func Seal(plaintext, key []byte) ([]byte, error) {

	nonce, err := GenRandomBytes(12)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal.
func Open(blob, key []byte) ([]byte, error) {

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(blob) < aesgcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := blob[:aesgcm.NonceSize()], blob[aesgcm.NonceSize():]
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

// Wipe overwrites the buffer with zeros. Callers defer it right after a
// secret buffer is obtained so every exit path wipes exactly once:
//
//	secret, err := base64.StdEncoding.DecodeString(encoded)
//	if err != nil { ... }
//	defer cryptox.Wipe(secret)
//
// A nil buffer is a no-op.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
