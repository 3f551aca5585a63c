package email

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"

	"pickme-backend/config"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// SuggestionEmailData is rendered into the job offer sent from an enterprise to a candidate.
type SuggestionEmailData struct {
	EnterpriseName    string
	EnterpriseAddress string
	CEOName           string
	ContactEmail      string
	CandidateNickName string
}

type codeEmailData struct {
	Code    string
	Minutes int
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		send:      smtp.SendMail,
	}
}

var (
	suggestionTemplate = template.Must(template.New("suggestion").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>PickMe</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #3d5afe; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .label { font-weight: bold; color: #555; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.EnterpriseName}}에서 채용 제안이 도착했습니다</h1>
        </div>
        <div class="content">
            <p>{{.CandidateNickName}}님, 안녕하세요.</p>
            <p>{{.EnterpriseName}}에서 PickMe에 등록된 프로필을 보고 채용을 제안했습니다.</p>
            <p><span class="label">회사명:</span> {{.EnterpriseName}}</p>
            <p><span class="label">대표자:</span> {{.CEOName}}</p>
            <p><span class="label">주소:</span> {{.EnterpriseAddress}}</p>
            <p><span class="label">연락처:</span> {{.ContactEmail}}</p>
        </div>
        <div class="footer">
            <p>이 메일은 PickMe에서 발송되었습니다.</p>
        </div>
    </div>
</body>
</html>`))

	codeTemplate = template.Must(template.New("code").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>PickMe</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>PickMe 이메일 인증</h2>
    <p>아래 인증 코드를 {{.Minutes}}분 안에 입력해 주세요.</p>
    <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.Code}}</p>
</body>
</html>`))
)

// SendSuggestion mails a job offer to the candidate.
func (s *EmailService) SendSuggestion(to string, data SuggestionEmailData) error {
	subject := fmt.Sprintf("[PickMe] %s에서 채용 제안 메일이 도착했습니다!", data.EnterpriseName)
	return s.render(to, data.ContactEmail, subject, suggestionTemplate, data)
}

// SendVerificationCode mails a registration code that is valid for the given minutes.
func (s *EmailService) SendVerificationCode(to, code string, minutes int) error {
	return s.render(to, "", "[PickMe] 이메일 인증 코드", codeTemplate, codeEmailData{Code: code, Minutes: minutes})
}

func (s *EmailService) render(to, replyTo, subject string, tmpl *template.Template, data any) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	var headers bytes.Buffer
	fmt.Fprintf(&headers, "From: %s\r\n", s.fromEmail)
	fmt.Fprintf(&headers, "To: %s\r\n", to)
	if replyTo != "" {
		fmt.Fprintf(&headers, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&headers, "Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject))
	headers.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")

	msg := append(headers.Bytes(), body.Bytes()...)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
