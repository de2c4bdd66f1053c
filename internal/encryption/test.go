package encryption

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"tt-go/internal/tt"
)

var testMagic = []byte("TTENC1\n")

// TestEncryptor frames data with a fixed marker instead of encrypting it.
// Output differs from the input and reverses without keys, which is all
// tests of the storage path need.
type TestEncryptor struct{}

var _ tt.Encryptor = (*TestEncryptor)(nil)

func NewTestEncryptor() *TestEncryptor { return &TestEncryptor{} }

func (*TestEncryptor) Setup(string) error { return nil }
func (*TestEncryptor) IsConfigured() bool { return true }

func (*TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := w.Write(testMagic); err != nil {
		return fmt.Errorf("writing marker: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

func (*TestEncryptor) Unlock(string) (tt.DecryptionContext, error) {
	return testDecryptor{}, nil
}

type testDecryptor struct{}

func (testDecryptor) Decrypt(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(testMagic))
	if err != nil || !bytes.Equal(head, testMagic) {
		return fmt.Errorf("input was not produced by TestEncryptor")
	}
	if _, err := br.Discard(len(testMagic)); err != nil {
		return err
	}
	if _, err := io.Copy(w, br); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}
