package mailer

import (
	"fmt"
	"html/template"
	"net/url"
	"os"
	"strings"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/events"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<html>
<body>
  <p>Hi {{.UserName}},</p>
  <p>An account has been created for you at <strong>{{.CompanyName}}</strong>.</p>
  <p>You can sign in with:</p>
  <ul>
    <li>Email: {{.Email}}</li>
    <li>Temporary password: {{.TempPassword}}</li>
  </ul>
  <p>Please set your own password within 24 hours using the link below:</p>
  <p><a href="{{.ResetURL}}">Set your password</a></p>
  <p>If you were not expecting this email, you can ignore it.</p>
</body>
</html>`))

type welcomeData struct {
	UserName     string
	CompanyName  string
	Email        string
	TempPassword string
	ResetURL     string
}

// RenderWelcome builds the provisioning email body. The reset link points
// at the frontend, which posts the token back to the reset endpoint.
func RenderWelcome(event events.UserProvisionedEvent) (subject, body string, err error) {
	base := strings.TrimRight(os.Getenv("FRONTEND_URL"), "/")
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", base, url.QueryEscape(event.ResetToken))

	var sb strings.Builder
	err = welcomeTmpl.Execute(&sb, welcomeData{
		UserName:     event.UserName,
		CompanyName:  event.CompanyName,
		Email:        event.Email,
		TempPassword: event.TempPassword,
		ResetURL:     resetURL,
	})
	if err != nil {
		return "", "", err
	}

	subject = fmt.Sprintf("Welcome to %s", event.CompanyName)
	return subject, sb.String(), nil
}
