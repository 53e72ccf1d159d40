package service

import "math/rand/v2"

const (
	keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	keyLength   = 32
)

// GenerateKeyValue returns a 32-character token with each character sampled
// independently and uniformly from the 62-character alphanumeric alphabet.
//
// math/rand is not a cryptographically secure source; key values issued here
// are random tokens, not key material derived from a CSPRNG.
// TODO: switch to crypto/rand if these keys ever gate more than this portal.
func GenerateKeyValue() string {
	b := make([]byte, keyLength)
	for i := range b {
		b[i] = keyAlphabet[rand.IntN(len(keyAlphabet))]
	}
	return string(b)
}
