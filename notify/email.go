package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"artspace/booking"
	"artspace/config"
)

// Sender delivers booking confirmations via SMTP.
type Sender struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewSender creates a new email sender.
func NewSender(cfg *config.Config, log *logrus.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

// BookingConfirmed sends a booking confirmation email to the customer.
func (s *Sender) BookingConfirmed(c booking.Confirmation) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{c.To}
	e.Subject = fmt.Sprintf("Booking confirmation %s", c.Reference)

	body := fmt.Sprintf("Dear %s,\n\n", c.CustomerName)
	body += fmt.Sprintf(
		"We received your booking (reference %s) for artwork #%d.\n"+
			"Preferred date: %s\n"+
			"Total amount: %.2f\n\n"+
			"We will contact you once the booking is confirmed.\n",
		c.Reference, c.ArtworkID, c.PreferredDate, c.TotalAmount,
	)
	body += "\nBest regards,\nArtspace"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("notify: send confirmation: %w", err)
	}

	s.log.Infof("confirmation email sent to %s for booking %s", c.To, c.Reference)
	return nil
}
