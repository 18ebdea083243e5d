package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 32
	keySize    = 32
	iterations = 100_000

	envelopeVersion = 1
)

var (
	ErrDecrypt     = errors.New("crypto: wrong secret or corrupted data")
	ErrEmptySecret = errors.New("crypto: empty secret")
)

// envelope is the on-disk form of sealed data.
type envelope struct {
	Version    int    `json:"version"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func deriveKey(secret string, salt []byte) []byte {
	return pbkdf2.Key([]byte(secret), salt, iterations, keySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "aes.NewCipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "cipher.NewGCM")
	}
	return gcm, nil
}

// Seal encrypts plaintext with a key derived from secret and returns a
// self-describing JSON envelope.
func Seal(plaintext []byte, secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "generate salt")
	}

	key := deriveKey(secret, salt)
	defer clearBytes(key)
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Wrap(err, "generate nonce")
	}

	out, err := json.Marshal(envelope{
		Version:    envelopeVersion,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: gcm.Seal(nil, nonce, plaintext, nil),
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal envelope")
	}
	return out, nil
}

// Open reverses Seal. Any authentication failure is reported as ErrDecrypt.
func Open(sealed []byte, secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	var env envelope
	if err := json.Unmarshal(sealed, &env); err != nil {
		return nil, errors.Wrap(ErrDecrypt, err.Error())
	}
	if env.Version != envelopeVersion || len(env.Salt) == 0 {
		return nil, ErrDecrypt
	}

	key := deriveKey(secret, env.Salt)
	defer clearBytes(key)
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(env.Nonce) != gcm.NonceSize() {
		return nil, ErrDecrypt
	}

	plaintext, err := gcm.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

func clearBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
