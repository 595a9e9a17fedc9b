package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendRecommendationsReady(toEmail, sessionId string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderName, frontendURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
		frontendURL: frontendURL,
	}
}

// SendRecommendationsReady tells the advising office a recommendation set is
// waiting for review.
func (s *emailService) SendRecommendationsReady(toEmail, sessionId string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Student recommendations ready for review")

	reviewLink := fmt.Sprintf("%s/sessions/%s/recommendations", s.frontendURL, sessionId)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Recommendations Ready</h2>
			<p>A new set of pathway recommendations has been generated for an advising session.</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Review Recommendations</a>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>Sessions expire one hour after creation.</p>
		</div>
	`, reviewLink, reviewLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send recommendations-ready mail: %w", err)
	}
	return nil
}
