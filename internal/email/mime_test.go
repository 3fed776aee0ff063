package email

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRawMessage(t *testing.T) {
	payload := bytes.Repeat([]byte("attachment-bytes-"), 10)
	msg := &Email{
		From:     "noreply@example.com",
		FromName: "Career Team",
		To:       []string{"staff@example.com"},
		Subject:  "New Application: Amira Ben Salah",
		Body:     "plain fallback",
		HTMLBody: "<p>hello</p>",
		Attachments: []Attachment{
			{Name: "cv.pdf", Content: payload, ContentType: "application/pdf"},
		},
	}

	raw, err := BuildRawMessage(msg)
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, "From: Career Team <noreply@example.com>")
	assert.Contains(t, text, "To: staff@example.com")
	assert.Contains(t, text, "Subject: New Application: Amira Ben Salah")
	assert.Contains(t, text, "MIME-Version: 1.0")
	assert.Contains(t, text, "Content-Type: multipart/mixed;")
	assert.Contains(t, text, "Content-Type: multipart/alternative;")
	assert.Contains(t, text, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, text, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, text, `Content-Disposition: attachment; filename="cv.pdf"`)
	assert.Contains(t, text, "Content-Transfer-Encoding: base64")

	// The attachment body round-trips through its base64 form.
	encoded := base64.StdEncoding.EncodeToString(payload)
	assert.Contains(t, strings.ReplaceAll(text, "\r\n", ""), encoded)

	// Base64 lines respect the MIME column limit.
	inAttachment := false
	for _, line := range strings.Split(text, "\r\n") {
		if strings.HasPrefix(line, "Content-Transfer-Encoding") {
			inAttachment = true
		}
		if inAttachment {
			assert.LessOrEqual(t, len(line), 76)
		}
	}
}

func TestBuildRawMessage_EncodesNonASCIIHeaders(t *testing.T) {
	msg := &Email{
		From:     "noreply@example.com",
		FromName: "Équipe Carrière",
		To:       []string{"staff@example.com"},
		Subject:  "Candidature reçue",
		HTMLBody: "<p>bonjour</p>",
	}

	raw, err := BuildRawMessage(msg)
	require.NoError(t, err)
	text := string(raw)

	assert.NotContains(t, text, "From: Équipe")
	assert.Contains(t, text, "=?utf-8?q?")
}

func TestBuildRawMessage_RequiresRecipients(t *testing.T) {
	_, err := BuildRawMessage(&Email{From: "noreply@example.com", Subject: "no one"})
	assert.Error(t, err)
}
