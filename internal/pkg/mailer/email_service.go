package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOTP(toEmail, otp string) error
	SendResetToken(toEmail, token string) error
}

const otpBody = `
	<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
		<h2>Welcome to ARIA!</h2>
		<p>Your verification code is:</p>
		<h1 style="color: #4CAF50; letter-spacing: 5px;">%s</h1>
		<p>This code will expire in 15 minutes.</p>
		<p>If you didn't request this, please ignore this email.</p>
	</div>
`

const resetBody = `
	<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
		<h2>Password Reset Request</h2>
		<p>You requested to reset your ARIA password. Click the button below to proceed:</p>
		<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset Password</a>
		<p>Or copy this link:</p>
		<p>%s</p>
		<p>This link will expire in 1 hour.</p>
		<p>If you didn't request this, please ignore this email.</p>
	</div>
`

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		// Reset links must land on the SPA, not the API.
		frontendURL: os.Getenv("FRONTEND_URL"),
	}
}

func (s *emailService) SendOTP(toEmail, otp string) error {
	return s.send(toEmail, "Your Verification Code", fmt.Sprintf(otpBody, otp))
}

func (s *emailService) SendResetToken(toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	return s.send(toEmail, "Reset Your Password", fmt.Sprintf(resetBody, resetLink, resetLink))
}

func (s *emailService) send(toEmail, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] %q sent to %s\n", subject, toEmail)
	return nil
}
