// Package cipher wraps a password-based authenticated-encryption envelope
// around an arbitrary byte stream.
//
// The envelope layout is salt(16) || iv(12) || ciphertext+tag(n+16). Key
// material is never reused across calls: Encrypt draws a fresh salt and IV
// from a cryptographically secure source for every invocation, the same way
// v2/handshake.go in the teacher mux draws a fresh X25519 keypair per
// handshake rather than caching one.
package cipher

import (
	"crypto/aes"
	gocipher "crypto/cipher"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
	"lukechampine.com/frand"

	"github.com/ashuwhy/framevault/internal/logx"
)

const (
	// SaltSize is the length, in bytes, of the random PBKDF2 salt.
	SaltSize = 16
	// IVSize is the length, in bytes, of the random GCM nonce.
	IVSize = 12
	// TagSize is the length, in bytes, of the GCM authentication tag.
	TagSize = 16
	// Overhead is the number of bytes an envelope adds beyond the plaintext.
	Overhead = SaltSize + IVSize + TagSize

	pbkdf2Iterations = 100_000
	keySize          = 32 // AES-256
)

// ErrCryptoFailure indicates the RNG or key derivation step failed during
// encryption.
var ErrCryptoFailure = errors.New("cipher: crypto failure")

// ErrDecryptionAuthFailure indicates the AEAD tag did not verify, which
// happens both for corrupted ciphertext and for a wrong password.
var ErrDecryptionAuthFailure = errors.New("cipher: decryption authentication failed")

// ErrEnvelopeTooShort indicates the supplied envelope is shorter than the
// minimum salt+iv+tag overhead and cannot possibly be valid.
var ErrEnvelopeTooShort = errors.New("cipher: envelope shorter than minimum overhead")

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keySize, sha256.New)
}

func newAEAD(key []byte) (gocipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return gocipher.NewGCM(block)
}

// Encrypt wraps plaintext in a salt||iv||ciphertext+tag envelope derived
// from password. The returned envelope is always len(plaintext)+Overhead
// bytes.
func Encrypt(plaintext []byte, password string) ([]byte, error) {
	envelope := make([]byte, SaltSize+IVSize+len(plaintext)+TagSize)
	salt := envelope[:SaltSize]
	iv := envelope[SaltSize : SaltSize+IVSize]
	frand.Read(salt)
	frand.Read(iv)

	key := deriveKey(password, salt)
	aead, err := newAEAD(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoFailure, err)
	}

	aead.Seal(envelope[:SaltSize+IVSize], iv, plaintext, nil)
	logx.L().Debug("cipher: encrypted envelope", "plaintextLen", len(plaintext), "envelopeLen", len(envelope))
	return envelope, nil
}

// Decrypt reverses Encrypt. It fails with ErrDecryptionAuthFailure if the
// tag does not verify against password, which is indistinguishable from a
// wrong password by design.
func Decrypt(envelope []byte, password string) ([]byte, error) {
	if len(envelope) < SaltSize+IVSize+TagSize {
		return nil, ErrEnvelopeTooShort
	}
	salt := envelope[:SaltSize]
	iv := envelope[SaltSize : SaltSize+IVSize]
	ciphertext := envelope[SaltSize+IVSize:]

	key := deriveKey(password, salt)
	aead, err := newAEAD(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoFailure, err)
	}

	plaintext, err := aead.Open(ciphertext[:0], iv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionAuthFailure, err)
	}
	return plaintext, nil
}
