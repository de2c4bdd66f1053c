package tt

import "io"

// Encryptor protects screenshots at rest. Encryption needs only the public
// key, so the server never holds the passphrase. Decryption is an operator
// action that unlocks the private key for one session.
type Encryptor interface {
	// Setup generates the key pair and protects the private key with passphrase.
	Setup(passphrase string) error

	// Encrypt reads plaintext from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key with passphrase.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether both key files exist.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}
