package mail

import (
	"bytes"
	"fmt"
	"text/template"
)

// Email bodies are small enough to keep inline; they are parsed once at
// package init so a bad template fails fast rather than on first send.
var (
	welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif;">
  <h2>Welcome, {{.Name}}!</h2>
  <p>Your account has been created with email id: <strong>{{.Email}}</strong>.</p>
</div>`))

	verifyOTPTmpl = template.Must(template.New("verify_otp").Parse(`
<div style="font-family: Arial, sans-serif;">
  <h2>Verify Your Account</h2>
  <p>Hello <strong>{{.Name}}</strong>,</p>
  <p>Your OTP is:</p>
  <h3>{{.Code}}</h3>
  <p>This OTP is valid for 24 hours.</p>
</div>`))

	resetOTPTmpl = template.Must(template.New("reset_otp").Parse(`
<div style="font-family: Arial, sans-serif;">
  <h2>Password Reset Request</h2>
  <p>Hello <strong>{{.Name}}</strong>,</p>
  <p>Use the OTP below to reset your password:</p>
  <h3>{{.Code}}</h3>
  <p>This OTP is valid for 15 minutes.</p>
  <p>If you did not request this, you can safely ignore this email.</p>
</div>`))
)

type templateData struct {
	Name  string
	Email string
	Code  string
}

func renderTemplate(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
