package mailer

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock

type Sender interface {
	Send(to, subject, htmlBody string) error
}

type smtpSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender reads the SMTP_* environment the same way the database and
// broker connections do.
func NewSMTPSender() Sender {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	return &smtpSender{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

func (s *smtpSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return d.DialAndSend(m)
}
