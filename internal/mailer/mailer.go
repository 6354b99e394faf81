// Package mailer sends transactional email over SMTP. Delivery is strictly
// best-effort: callers log failures and move on, and nothing in the money
// path ever waits on it.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer wraps a gomail dialer. It is constructed once at startup and
// injected wherever mail is sent.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func New(cfg Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers a plain-text email.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *Mailer) SendOTP(to, otp string) error {
	return m.Send(to, "Your PayGo OTP Code",
		fmt.Sprintf("Your OTP is: %s\nIt expires in 10 minutes.", otp))
}

func (m *Mailer) SendWelcome(to, name string) error {
	return m.Send(to, "Welcome to PayGo",
		fmt.Sprintf("Hi %s,\n\nYour PayGo account has been created successfully!", name))
}

func (m *Mailer) SendPasswordChanged(to string) error {
	return m.Send(to, "Password Updated",
		"Your PayGo account password was successfully changed.\nIf this wasn't you, reset your password immediately.")
}

func (m *Mailer) SendWalletFunded(to string, amount float64) error {
	return m.Send(to, "Wallet Funded Successfully",
		fmt.Sprintf("Your PayGo wallet has been funded with ₦%.2f.", amount))
}

func (m *Mailer) SendTransferDebit(to, recipientName string, amount float64) error {
	return m.Send(to, "Transfer Successful",
		fmt.Sprintf("You sent ₦%.2f to %s.", amount, recipientName))
}

func (m *Mailer) SendTransferCredit(to, senderName string, amount float64) error {
	return m.Send(to, "You Received Money",
		fmt.Sprintf("You received ₦%.2f from %s.", amount, senderName))
}

func (m *Mailer) SendSuspension(to string, suspended bool) error {
	if suspended {
		return m.Send(to, "Account Suspended", "Your PayGo account has been suspended by the admin.")
	}
	return m.Send(to, "Account Restored", "Good news! Your PayGo account has been restored by the admin.")
}
