package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBrevoAPIURL = "https://api.brevo.com/v3/smtp/email"

// BrevoMailer sends transactional emails via the Brevo (Sendinblue) HTTP API v3.
type BrevoMailer struct {
	apiKey      string
	senderEmail string
	senderName  string
	baseURL     string
	client      *http.Client
}

// NewBrevoMailer builds a mailer from the Brevo credentials. All three values
// are required; a half-configured mailer would fail on every send anyway.
func NewBrevoMailer(apiKey, senderEmail, senderName string) (*BrevoMailer, error) {
	if apiKey == "" || senderEmail == "" || senderName == "" {
		return nil, errors.New("mail: api key, sender email and sender name are required")
	}

	return &BrevoMailer{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		baseURL:     defaultBrevoAPIURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (m *BrevoMailer) SendWelcome(ctx context.Context, toEmail, name string) error {
	html, err := renderTemplate(welcomeTmpl, templateData{Name: name, Email: toEmail})
	if err != nil {
		return err
	}
	return m.send(ctx, toEmail, "Welcome to RAD Tech", html)
}

func (m *BrevoMailer) SendVerifyOTP(ctx context.Context, toEmail, name, code string) error {
	html, err := renderTemplate(verifyOTPTmpl, templateData{Name: name, Code: code})
	if err != nil {
		return err
	}
	return m.send(ctx, toEmail, "Verify Your Account - OTP Code", html)
}

func (m *BrevoMailer) SendResetOTP(ctx context.Context, toEmail, name, code string) error {
	html, err := renderTemplate(resetOTPTmpl, templateData{Name: name, Code: code})
	if err != nil {
		return err
	}
	return m.send(ctx, toEmail, "Password Reset - OTP", html)
}

// sendEmailReq defines the structure for a Brevo send email request.
type sendEmailReq struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func (m *BrevoMailer) send(ctx context.Context, toEmail, subject, html string) error {
	reqBody := sendEmailReq{
		Sender:      map[string]string{"email": m.senderEmail, "name": m.senderName},
		To:          []map[string]string{{"email": toEmail}},
		Subject:     subject,
		HTMLContent: html,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("mail: marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("mail: build request: %w", err)
	}

	httpReq.Header.Set("api-key", m.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("mail: send to %s: %w", toEmail, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail: send to %s failed with status %d", toEmail, resp.StatusCode)
	}

	return nil
}
