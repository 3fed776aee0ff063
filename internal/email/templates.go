package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager keeps the parsed HTML templates for outbound mail.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager creates a manager with the built-in templates
// registered.
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	builtins := map[string]string{
		TemplateApplicationReceived: applicationReceivedTemplate,
		TemplateTestEmail:           testEmailTemplate,
	}
	for name, body := range builtins {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

// Render executes a registered template with the given data.
func (tm *TemplateManager) Render(templateName string, data interface{}) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate registers a template under a name.
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// Built-in template names.
const (
	TemplateApplicationReceived = "application_received"
	TemplateTestEmail           = "test_email"
)

// ApplicationData feeds the application notification template.
type ApplicationData struct {
	FullName            string
	Email               string
	Phone               string
	LinkedIn            string
	Poste               string
	FrenchLevel         string
	EnglishLevel        string
	InterestedCountries []string
	Message             string
	DateNaissance       string
	AcceptTerms         bool
	Service             string
	SubmittedAt         string
	FileCount           int
}

const applicationReceivedTemplate = `<div style="font-family: Arial, sans-serif; max-width: 650px; margin: 0 auto;">
  <div style="background: #0097a7; padding: 24px; text-align: center; color: white;">
    <h1 style="margin: 0; font-size: 24px;">New Candidate Application</h1>
    {{if .Service}}<p style="margin: 8px 0 0 0;">{{.Service}}</p>{{end}}
  </div>
  <div style="background: #f5f5f5; padding: 24px;">
    <h2 style="color: #0097a7;">Personal Information</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 6px 0; width: 40%;"><strong>Full Name:</strong></td><td>{{.FullName}}</td></tr>
      <tr><td style="padding: 6px 0;"><strong>Email:</strong></td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
      {{if .Phone}}<tr><td style="padding: 6px 0;"><strong>Phone:</strong></td><td>{{.Phone}}</td></tr>{{end}}
      {{if .LinkedIn}}<tr><td style="padding: 6px 0;"><strong>LinkedIn:</strong></td><td><a href="{{.LinkedIn}}">View Profile</a></td></tr>{{end}}
      {{if .DateNaissance}}<tr><td style="padding: 6px 0;"><strong>Date of Birth:</strong></td><td>{{.DateNaissance}}</td></tr>{{end}}
    </table>
    {{if .Poste}}
    <h2 style="color: #0097a7;">Position</h2>
    <p><strong>Desired Position:</strong> {{.Poste}}</p>
    {{end}}
    {{if or .FrenchLevel .EnglishLevel}}
    <h2 style="color: #0097a7;">Language Skills</h2>
    <table style="width: 100%; border-collapse: collapse;">
      {{if .FrenchLevel}}<tr><td style="padding: 6px 0; width: 40%;"><strong>French:</strong></td><td>{{.FrenchLevel}}</td></tr>{{end}}
      {{if .EnglishLevel}}<tr><td style="padding: 6px 0;"><strong>English:</strong></td><td>{{.EnglishLevel}}</td></tr>{{end}}
    </table>
    {{end}}
    {{if .InterestedCountries}}
    <h2 style="color: #0097a7;">Preferences</h2>
    <p><strong>Interested Destinations:</strong>
      {{range $i, $c := .InterestedCountries}}{{if $i}}, {{end}}{{$c}}{{end}}
    </p>
    {{end}}
    {{if .Message}}
    <h2 style="color: #0097a7;">Message</h2>
    <p style="line-height: 1.6; color: #555;">{{.Message}}</p>
    {{end}}
    <div style="margin-top: 16px; color: #666;">
      <p><strong>Terms Accepted:</strong> {{if .AcceptTerms}}Yes{{else}}No{{end}}</p>
      <p style="font-size: 13px; color: #999;">Submitted: {{.SubmittedAt}}</p>
      {{if .FileCount}}<p>{{.FileCount}} file(s) attached</p>{{end}}
    </div>
  </div>
</div>`

const testEmailTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 32px; text-align: center;">
  <h1 style="color: #0097a7;">Email Test Successful</h1>
  <p style="font-size: 16px; color: #555;">
    The notification provider is configured and reachable.
  </p>
  <p style="color: #999; font-size: 13px;">Test performed at: {{.Timestamp}}</p>
</div>`
