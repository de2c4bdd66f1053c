// Package mail delivers employee activation links.
package mail

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"tt-go/internal/tt"
)

var activationBody = template.Must(template.New("activation").Parse(`Hello {{.Name}},

You have been invited to track time with tt.

Activate your account here:

    {{.Link}}

This link expires on {{.ExpiresAt.UTC.Format "2006-01-02 15:04 MST"}}.
`))

const activationSubject = "Activate your tt account"

func renderActivation(msg tt.ActivationMail) (string, error) {
	name := msg.Name
	if name == "" {
		name = msg.To
	}
	var buf bytes.Buffer
	err := activationBody.Execute(&buf, struct {
		Name      string
		Link      string
		ExpiresAt time.Time
	}{name, msg.Link, msg.ExpiresAt})
	if err != nil {
		return "", fmt.Errorf("rendering activation mail: %w", err)
	}
	return buf.String(), nil
}
