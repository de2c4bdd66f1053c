package testutil

import (
	"context"
	"sync"

	"tt-go/internal/tt"
)

// RecordingMailer keeps every message it is asked to send. When Err is set
// the message is still recorded and Err is returned.
type RecordingMailer struct {
	mu   sync.Mutex
	sent []tt.ActivationMail
	Err  error
}

func (m *RecordingMailer) SendActivation(ctx context.Context, msg tt.ActivationMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.Err
}

// Sent returns a copy of the recorded messages.
func (m *RecordingMailer) Sent() []tt.ActivationMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tt.ActivationMail(nil), m.sent...)
}
