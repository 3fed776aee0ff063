package email

// Attachment is one file carried by an email message.
type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

// Email is a provider-independent message. Each provider adapts it to
// its own transfer form (base64 for the HTTP APIs, raw MIME for SES).
type Email struct {
	From        string
	FromName    string
	To          []string
	ToName      string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}
