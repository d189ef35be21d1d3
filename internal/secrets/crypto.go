package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	saltLen = 16
	keyLen  = 32 // AES-256
)

// KDFParams are the Argon2id cost settings. They are stored with the
// vault so they can be raised without breaking existing files.
type KDFParams struct {
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"`
	Threads uint8  `json:"threads"`
}

// DefaultKDF costs 64 MB and one pass.
var DefaultKDF = KDFParams{Time: 1, Memory: 64 * 1024, Threads: 4}

// DeriveKey derives a 32-byte key from a password and salt using Argon2id.
func (p KDFParams) DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, keyLen)
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// sealer encrypts with AES-256-GCM, prepending the nonce.
type sealer struct {
	aead cipher.AEAD
}

func newSealer(key []byte) (*sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &sealer{aead: gcm}, nil
}

// seal binds the ciphertext to ad, which must be passed again to open.
func (s *sealer) seal(plaintext, ad []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plaintext, ad), nil
}

func (s *sealer) open(data, ad []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(data) < n {
		return nil, errors.New("ciphertext too short")
	}
	return s.aead.Open(nil, data[:n], data[n:], ad)
}
