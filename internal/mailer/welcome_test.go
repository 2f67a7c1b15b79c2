package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/events"
)

func TestRenderWelcome(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://app.example.test/")

	event := events.UserProvisionedEvent{
		UserName:     "Jane Smith",
		CompanyName:  "Acme",
		Email:        "jane@acme.test",
		TempPassword: "superSecret1",
		ResetToken:   "token with spaces",
	}

	subject, body, err := RenderWelcome(event)

	assert.NoError(t, err)
	assert.Equal(t, "Welcome to Acme", subject)
	assert.Contains(t, body, "Hi Jane Smith,")
	assert.Contains(t, body, "jane@acme.test")
	assert.Contains(t, body, "superSecret1")
	assert.Contains(t, body, "https://app.example.test/reset-password?token=token+with+spaces")
}

func TestRenderWelcome_EscapesHTML(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://app.example.test")

	event := events.UserProvisionedEvent{
		UserName:    "<script>alert(1)</script>",
		CompanyName: "Acme",
	}

	_, body, err := RenderWelcome(event)

	assert.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
