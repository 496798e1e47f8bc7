package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"wtsplinks/internal/config"
)

type IMailService interface {
	SendPasswordResetCode(to, code string, validFor time.Duration) error
}

type smtpMailService struct {
	smtp    config.SMTPConfig
	app     config.AppConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(smtpCfg config.SMTPConfig, app config.AppConfig) (IMailService, error) {
	htmlTpl, err := template.New("html").Parse(resetHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}
	textTpl, err := template.New("text").Parse(resetTextTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse text template: %w", err)
	}

	return &smtpMailService{
		smtp:    smtpCfg,
		app:     app,
		htmlTpl: htmlTpl,
		textTpl: textTpl,
	}, nil
}

type resetEmailData struct {
	AppName  string
	Code     string
	Minutes  int
	ResetURL string
	Year     int
}

const resetHTMLTemplate = `<!doctype html>
<html>
<body style="font-family: -apple-system, Segoe UI, Roboto, Helvetica, Arial, sans-serif; background:#f4f6f8; padding:32px;">
  <div style="max-width:480px; margin:0 auto; background:#ffffff; border-radius:12px; padding:32px;">
    <h2 style="margin-top:0; color:#128c7e;">{{.AppName}}</h2>
    <p>Use this code to reset your password. It expires in {{.Minutes}} minutes.</p>
    <p style="font-size:32px; letter-spacing:8px; font-weight:700;">{{.Code}}</p>
    {{if .ResetURL}}<p><a href="{{.ResetURL}}">Open the reset page</a></p>{{end}}
    <p style="color:#888; font-size:12px;">If you did not ask for this you can ignore this email.</p>
    <p style="color:#888; font-size:12px;">&copy; {{.Year}} {{.AppName}}</p>
  </div>
</body>
</html>`

const resetTextTemplate = `{{.AppName}}

Your password reset code is {{.Code}}. It expires in {{.Minutes}} minutes.
{{if .ResetURL}}
Reset page: {{.ResetURL}}
{{end}}
If you did not ask for this you can ignore this email.
`

func (s *smtpMailService) SendPasswordResetCode(to, code string, validFor time.Duration) error {
	data := resetEmailData{
		AppName: s.app.Name,
		Code:    code,
		Minutes: int(validFor.Minutes()),
		Year:    time.Now().Year(),
	}
	if base := strings.TrimRight(s.app.BaseURL, "/"); base != "" {
		data.ResetURL = base + "/reset-password"
	}

	var html, text bytes.Buffer
	if err := s.htmlTpl.Execute(&html, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	if err := s.textTpl.Execute(&text, data); err != nil {
		return fmt.Errorf("render text: %w", err)
	}

	return s.send(to, "Reset your password", html.String(), text.String())
}

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.fromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	msg := s.buildMessage(to, subject, htmlBody, textBody)
	addr := fmt.Sprintf("%s:%d", s.smtp.Host, s.smtp.Port)
	tlsCfg := &tls.Config{ServerName: s.smtp.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	if s.smtp.UseSSL {
		conn, err = tls.DialWithDialer(&net.Dialer{Timeout: 10 * time.Second}, "tcp", addr, tlsCfg)
	} else {
		conn, err = (&net.Dialer{Timeout: 10 * time.Second}).Dial("tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.smtp.Host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Quit()

	if !s.smtp.UseSSL {
		ok, _ := c.Extension("STARTTLS")
		if !ok {
			return fmt.Errorf("smtp server %s does not support STARTTLS", s.smtp.Host)
		}
		if err = c.StartTLS(tlsCfg); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if s.smtp.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.smtp.Username, s.smtp.Password, s.smtp.Host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err = c.Mail(s.smtp.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) fromHeader() string {
	name := strings.TrimSpace(s.smtp.FromName)
	if name == "" {
		return s.smtp.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.smtp.From)
}
