package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type IMailer interface {
	SendMisplacedAlert(productName string, expectedLocation string, scannedLocation string) error
}

type smtp struct {
	auth    smtpPkg.Auth
	mail    string
	alertTo string
}

func New() IMailer {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	auth := smtpPkg.PlainAuth("", mail, password, "smtp.gmail.com")

	return &smtp{
		auth:    auth,
		mail:    mail,
		alertTo: os.Getenv("ALERT_EMAIL"),
	}
}

// SendMisplacedAlert mails the warehouse contact when a product is found at
// the wrong location. A missing ALERT_EMAIL disables alerting.
func (s *smtp) SendMisplacedAlert(productName string, expectedLocation string, scannedLocation string) error {
	if s.alertTo == "" {
		return nil
	}

	to := []string{s.alertTo}

	message := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: Misplaced product: %s\r\n\r\n%s should be at %s, but was scanned at %s.",
		s.alertTo, productName, productName, expectedLocation, scannedLocation))

	if err := smtpPkg.SendMail("smtp.gmail.com:587", s.auth, s.mail, to, message); err != nil {
		return err
	}

	return nil
}
