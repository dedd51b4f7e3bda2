package services

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/resendlabs/resend-go"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
}

func NewEmailService() (*EmailService, error) {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable not set")
	}

	fromEmail := os.Getenv("FROM_EMAIL")
	if fromEmail == "" {
		fromEmail = "noreply@apiforge.dev"
	}

	client := resend.NewClient(apiKey)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
	}, nil
}

// SendAPIGenerated mails the owner the generated endpoint URL and the
// access token. qrPNG, when non-empty, is embedded inline as a data URI.
func (s *EmailService) SendAPIGenerated(email, apiURL, accessToken string, qrPNG []byte) error {
	// Skip email sending in test mode
	if os.Getenv("SKIP_EMAIL_SEND") == "true" {
		return nil
	}

	qrBlock := ""
	if len(qrPNG) > 0 {
		qrBlock = fmt.Sprintf(`
				<p>Scan to open the endpoint on another device:</p>
				<img src="data:image/png;base64,%s" alt="API link QR code" width="180" height="180" />`,
			base64.StdEncoding.EncodeToString(qrPNG))
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: "Your Custom API Link",
		Html: fmt.Sprintf(`
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #2c3e50;">Your Custom API Link</h2>
				<p>Your custom API has been generated successfully!</p>
				<p><strong>API Link:</strong> %s</p>
				<p><strong>Authorization Header:</strong> %s</p>
				<p>You can now perform CRUD operations using this API.</p>%s
				<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
				<p style="color: #999; font-size: 12px;">This is an automated email. Please do not reply.</p>
			</div>
		`, apiURL, accessToken, qrBlock),
	}

	_, err := s.client.Emails.Send(params)
	return err
}

// SendOtpCode mails a 6-digit verification code.
func (s *EmailService) SendOtpCode(email string, code int) error {
	// Skip email sending in test mode
	if os.Getenv("SKIP_EMAIL_SEND") == "true" {
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: "Your Verification Code",
		Html: fmt.Sprintf(`
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
				<h2>Your Verification Code</h2>
				<p>Your OTP is: <strong style="color:#007BFF;">%06d</strong></p>
				<p>This OTP will expire in 10 minutes.</p>
				<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
				<p style="color: #999; font-size: 12px;">This is an automated email. Please do not reply.</p>
			</div>
		`, code),
	}

	_, err := s.client.Emails.Send(params)
	return err
}

// SendSessionToken mails a freshly minted platform session token.
func (s *EmailService) SendSessionToken(email, token string) error {
	// Skip email sending in test mode
	if os.Getenv("SKIP_EMAIL_SEND") == "true" {
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: "Your New API Access Token",
		Html: fmt.Sprintf(`
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
				<h2 style="color: #007BFF;">Your New API Access Token</h2>
				<p>Here is your new API token:</p>
				<p style="font-weight: bold; color: #007BFF;">%s</p>
				<p>Use this token in the Authorization header for API requests.</p>
				<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
				<p style="color: #999; font-size: 12px;">This is an automated email. Please do not reply.</p>
			</div>
		`, token),
	}

	_, err := s.client.Emails.Send(params)
	return err
}

// SendAPIUserToken mails an API consumer their access token, either on
// signup or again on login.
func (s *EmailService) SendAPIUserToken(email, token string, signup bool) error {
	// Skip email sending in test mode
	if os.Getenv("SKIP_EMAIL_SEND") == "true" {
		return nil
	}

	subject := "Your API Token"
	intro := "You have successfully logged in! 🎉"
	if signup {
		subject = "Your Custom API Token"
		intro = "You have successfully signed up to generate your own APIs! 🎉"
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Html: fmt.Sprintf(`
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
				<p>%s</p>
				<p>Here is your API token:</p>
				<p><strong>%s</strong></p>
				<p>Attach this token in the headers as <code>Authorization: Bearer YOUR_API_TOKEN</code> when using your custom APIs.</p>
				<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
				<p style="color: #999; font-size: 12px;">This is an automated email. Please do not reply.</p>
			</div>
		`, intro, token),
	}

	_, err := s.client.Emails.Send(params)
	return err
}
