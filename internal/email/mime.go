package email

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
)

const (
	mixedBoundary = "INTAKE_MIXED_BOUNDARY"
	altBoundary   = "INTAKE_ALT_BOUNDARY"
)

// BuildRawMessage assembles an Email into a raw MIME message:
// multipart/mixed wrapping a multipart/alternative body plus one
// base64 part per attachment.
func BuildRawMessage(email *Email) ([]byte, error) {
	if len(email.To) == 0 {
		return nil, fmt.Errorf("no recipients specified")
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", mime.QEncoding.Encode("utf-8", email.FromName), email.From),
		fmt.Sprintf("To: %s", strings.Join(email.To, ", ")),
		fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", email.Subject)),
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q", mixedBoundary),
		"",
	}

	var body []string

	// Text/HTML alternatives
	body = append(body,
		"--"+mixedBoundary,
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q", altBoundary),
		"",
	)
	if email.Body != "" {
		body = append(body,
			"--"+altBoundary,
			"Content-Type: text/plain; charset=UTF-8",
			"",
			email.Body,
			"",
		)
	}
	if email.HTMLBody != "" {
		body = append(body,
			"--"+altBoundary,
			"Content-Type: text/html; charset=UTF-8",
			"",
			email.HTMLBody,
			"",
		)
	}
	body = append(body, "--"+altBoundary+"--", "")

	for _, att := range email.Attachments {
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		body = append(body,
			"--"+mixedBoundary,
			fmt.Sprintf("Content-Type: %s; name=%q", contentType, att.Name),
			"Content-Transfer-Encoding: base64",
			fmt.Sprintf("Content-Disposition: attachment; filename=%q", att.Name),
			"",
			wrapBase64(base64.StdEncoding.EncodeToString(att.Content)),
			"",
		)
	}

	body = append(body, "--"+mixedBoundary+"--")

	message := strings.Join(headers, "\r\n") + "\r\n" + strings.Join(body, "\r\n")
	return []byte(message), nil
}

// wrapBase64 folds encoded content to the 76-column MIME line limit.
func wrapBase64(encoded string) string {
	const lineLen = 76
	var b strings.Builder
	for len(encoded) > lineLen {
		b.WriteString(encoded[:lineLen])
		b.WriteString("\r\n")
		encoded = encoded[lineLen:]
	}
	b.WriteString(encoded)
	return b.String()
}
