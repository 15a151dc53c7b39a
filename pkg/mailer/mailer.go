package mailer

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional emails. Implementations must be safe for
// concurrent use; callers dispatch from goroutines.
type Mailer interface {
	SendOTP(to, code string) error
	SendAchievementUnlocked(to, name, description, icon string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a Mailer from SMTP_* environment variables.
func NewSMTPMailer() (Mailer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}

	port := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		port = p
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "no-reply@campquest.app"
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")),
		from:   from,
	}, nil
}

func (m *smtpMailer) SendOTP(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your CampQuest verification code")
	msg.SetBody("text/plain", fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code))

	return m.dialer.DialAndSend(msg)
}

func (m *smtpMailer) SendAchievementUnlocked(to, name, description, icon string) error {
	body := fmt.Sprintf("You unlocked a new achievement: %s %s\n\n%s", icon, name, description)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Achievement unlocked: %s", name))
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
