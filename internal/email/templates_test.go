package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderApplicationReceived(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render(TemplateApplicationReceived, ApplicationData{
		FullName:            "Amira Ben Salah",
		Email:               "amira@example.com",
		Phone:               "+216 20 123 456",
		Poste:               "Backend Developer",
		FrenchLevel:         "C1",
		EnglishLevel:        "B2",
		InterestedCountries: []string{"Canada", "Germany"},
		Message:             "Looking forward to hearing from you.",
		AcceptTerms:         true,
		Service:             "Job Search",
		SubmittedAt:         "Sat, 30 Aug 2026 10:00:00 UTC",
		FileCount:           2,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Amira Ben Salah")
	assert.Contains(t, html, "amira@example.com")
	assert.Contains(t, html, "Backend Developer")
	assert.Contains(t, html, "Canada, Germany")
	assert.Contains(t, html, "Job Search")
	assert.Contains(t, html, "2 file(s) attached")
	assert.Contains(t, html, "Terms Accepted:</strong> Yes")
}

func TestRenderApplicationReceived_OptionalSectionsOmitted(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render(TemplateApplicationReceived, ApplicationData{
		FullName:    "Minimal Candidate",
		Email:       "minimal@example.com",
		SubmittedAt: "Sat, 30 Aug 2026 10:00:00 UTC",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Minimal Candidate")
	assert.NotContains(t, html, "Language Skills")
	assert.NotContains(t, html, "Interested Destinations")
	assert.NotContains(t, html, "file(s) attached")
	assert.Contains(t, html, "Terms Accepted:</strong> No")
}

func TestRenderEscapesHTML(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render(TemplateApplicationReceived, ApplicationData{
		FullName:    "<script>alert(1)</script>",
		Email:       "x@example.com",
		SubmittedAt: "now",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("does_not_exist", nil)
	assert.Error(t, err)
}

func TestAddTemplateOverride(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	require.NoError(t, tm.AddTemplate("custom", "Hello {{.Name}}"))
	html, err := tm.Render("custom", map[string]string{"Name": "World"})
	require.NoError(t, err)
	assert.Equal(t, "Hello World", html)

	assert.Error(t, tm.AddTemplate("broken", "{{.Unclosed"))
}
