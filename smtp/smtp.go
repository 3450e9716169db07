package smtp

import (
	"fmt"
	"net/smtp"
)

// Mailer sends verification codes over SMTP. Sends are best effort: callers
// log failures and never surface them to the request.
type Mailer struct {
	host     string
	port     string
	user     string
	password string
}

func NewMailer(host, port, user, password string) *Mailer {
	return &Mailer{host: host, port: port, user: user, password: password}
}

// SendVerificationCode emails a verification code to the user.
func (m *Mailer) SendVerificationCode(to, username, code string) error {
	subject := "[Todo Market] Email verification code"
	body := fmt.Sprintf("Hello %s,\n\nYour email verification code is: %s\n\nThe code expires in 5 minutes. Do not share it with anyone.\n\nIf you did not request this, ignore this email.", username, code)

	message := []byte("Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.user, m.password, m.host)

	return smtp.SendMail(
		m.host+":"+m.port,
		auth,
		m.user,
		[]string{to},
		message,
	)
}
