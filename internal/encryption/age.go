package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"

	"tt-go/internal/config"
	"tt-go/internal/tt"
)

// ErrKeysExist is returned by Setup when a key pair is already on disk.
var ErrKeysExist = errors.New("encryption keys already exist")

// AgeEncryptor encrypts screenshots to an X25519 recipient with filippo.io/age.
// The server only reads the public key. The private key file is itself age
// encrypted with a scrypt passphrase and is opened by operators through Unlock.
type AgeEncryptor struct {
	publicKeyPath  string
	privateKeyPath string
}

var _ tt.Encryptor = (*AgeEncryptor)(nil)

// NewAgeEncryptor creates an AgeEncryptor for the configured key paths.
func NewAgeEncryptor(cfg config.EncryptionConfig) *AgeEncryptor {
	return &AgeEncryptor{
		publicKeyPath:  cfg.PublicKeyPath,
		privateKeyPath: cfg.PrivateKeyPath,
	}
}

// Setup generates a key pair. It refuses to replace existing keys, since
// screenshots encrypted to the old key would become unreadable.
func (e *AgeEncryptor) Setup(passphrase string) error {
	if e.IsConfigured() {
		return ErrKeysExist
	}
	if passphrase == "" {
		return fmt.Errorf("passphrase must not be empty")
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	for _, p := range []string{e.publicKeyPath, e.privateKeyPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
			return fmt.Errorf("creating key directory: %w", err)
		}
	}

	if err := writeSealedIdentity(e.privateKeyPath, identity, passphrase); err != nil {
		return err
	}
	if err := os.WriteFile(e.publicKeyPath, []byte(identity.Recipient().String()+"\n"), 0644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}
	return nil
}

func writeSealedIdentity(path string, identity *age.X25519Identity, passphrase string) error {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}

	var sealed bytes.Buffer
	w, err := age.Encrypt(&sealed, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.WriteString(w, identity.String()+"\n"); err != nil {
		return fmt.Errorf("sealing private key: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("sealing private key: %w", err)
	}

	if err := os.WriteFile(path, sealed.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}
	return nil
}

// Encrypt streams r through age to w using the public key.
func (e *AgeEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	recipient, err := e.recipient()
	if err != nil {
		return err
	}

	ew, err := age.Encrypt(w, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(ew, r); err != nil {
		return fmt.Errorf("encrypting data: %w", err)
	}
	if err := ew.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}

// Unlock opens the private key with passphrase.
func (e *AgeEncryptor) Unlock(passphrase string) (tt.DecryptionContext, error) {
	sealed, err := os.ReadFile(e.privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}

	scrypt, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}
	r, err := age.Decrypt(bytes.NewReader(sealed), scrypt)
	if err != nil {
		return nil, fmt.Errorf("unsealing private key: %w", err)
	}

	identities, err := age.ParseIdentities(r)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	if len(identities) == 0 {
		return nil, fmt.Errorf("private key file holds no identity")
	}
	return &ageDecryptor{identity: identities[0]}, nil
}

// IsConfigured reports whether both key files exist.
func (e *AgeEncryptor) IsConfigured() bool {
	for _, p := range []string{e.publicKeyPath, e.privateKeyPath} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

func (e *AgeEncryptor) recipient() (age.Recipient, error) {
	data, err := os.ReadFile(e.publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading public key: %w", err)
	}
	recipients, err := age.ParseRecipients(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("public key file holds no recipient")
	}
	return recipients[0], nil
}

type ageDecryptor struct {
	identity age.Identity
}

func (d *ageDecryptor) Decrypt(r io.Reader, w io.Writer) error {
	dr, err := age.Decrypt(r, d.identity)
	if err != nil {
		return fmt.Errorf("opening ciphertext: %w", err)
	}
	if _, err := io.Copy(w, dr); err != nil {
		return fmt.Errorf("decrypting data: %w", err)
	}
	return nil
}
