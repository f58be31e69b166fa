package mailer

import (
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

// SMTP transport configured from env. When SMTP_HOST is unset the mailer is
// not ready and callers decide whether that is fatal (registration) or
// best-effort (notifications).

var (
	dialer   *gomail.Dialer
	dialerMu sync.Mutex
	from     string
)

var ErrNotConfigured = errors.New("mail transport not configured")

func init() {
	// Load env from .env
	godotenv.Load()
}

func getDialer() (*gomail.Dialer, error) {
	dialerMu.Lock()
	defer dialerMu.Unlock()

	if dialer != nil {
		return dialer, nil
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, ErrNotConfigured
	}

	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	from = os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	dialer = gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"))
	return dialer, nil
}

// Ready reports whether the transport is configured.
func Ready() bool {
	_, err := getDialer()
	return err == nil
}

func send(to, subject, htmlBody string) error {
	d, err := getDialer()
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return d.DialAndSend(m)
}
