// cryptor
package cryptors

import (
	"github.com/friendsofgo/errors"
)

const (
	BitsPerByte = 8
	// MinimumKeywordLength is the shortest keyword accepted by the keyed
	// Caesar and Playfair ciphers.
	MinimumKeywordLength = 7
)

// Error kinds reported by the cipher engines.  Engines wrap them with context;
// use errors.Is to test for a kind.
var (
	ErrConfiguration   = errors.New("configuration error")
	ErrInvalidKey      = errors.New("invalid key")
	ErrInvalidInput    = errors.New("invalid input")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrKeyLength       = errors.New("key length error")
)

// Cipher is implemented by the text ciphers (Caesar, keyed Caesar and
// Playfair).  Implementations are immutable after construction and safe for
// concurrent use.
type Cipher interface {
	Name() string
	Encrypt(text string) (string, error)
	Decrypt(text string) (string, error)
}

func Encrypt(c Cipher, text string) (string, error) {
	return c.Encrypt(text)
}

func Decrypt(c Cipher, text string) (string, error) {
	return c.Decrypt(text)
}

// RoundTrip encrypts text and decrypts the result, returning both.
func RoundTrip(c Cipher, text string) (cipherText, plainText string, err error) {
	if cipherText, err = c.Encrypt(text); err != nil {
		return "", "", err
	}

	plainText, err = c.Decrypt(cipherText)
	return cipherText, plainText, err
}
