package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
)

// CertificateIssued is the payload for the congratulations email sent
// after a certificate has been durably created.
type CertificateIssued struct {
	To            string
	RecipientName string
	EventName     string
	UniqueID      string
	PDFURL        *string
}

// CertificateSender dispatches the post-issuance notification. Dispatch
// is best-effort: callers must never let a send failure alter the
// outcome of the issuance itself.
type CertificateSender interface {
	SendCertificateIssued(ctx context.Context, msg CertificateIssued) error
}

// html/template escapes every interpolated value, so recipient-supplied
// names cannot inject markup.
var certificateIssuedTmpl = template.Must(template.New("certificate_issued").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #4285f4; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; background-color: #f9f9f9; }
    .button { display: inline-block; padding: 12px 24px; background-color: #4285f4; color: white; text-decoration: none; border-radius: 4px; margin: 10px 0; }
    .footer { text-align: center; padding: 20px; font-size: 12px; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Congratulations!</h1>
    </div>
    <div class="content">
      <p>Dear {{.RecipientName}},</p>
      <p>Congratulations on completing <strong>{{.EventName}}</strong>!</p>
      <p>Your certificate has been generated and is ready for verification.</p>
      <p><strong>Certificate ID:</strong> {{.UniqueID}}</p>
      <p>You can validate your certificate at any time using the link below:</p>
      <p style="text-align: center;">
        <a href="{{.ValidationURL}}" class="button">Validate Certificate</a>
      </p>
      {{if .PDFURL}}<p style="text-align: center;"><a href="{{.PDFURL}}" class="button">Download PDF</a></p>{{end}}
      <p>Keep this certificate ID safe for future reference.</p>
      <p>Best regards,<br>GDGoC Team</p>
    </div>
    <div class="footer">
      <p>This is an automated email. Please do not reply.</p>
      <p>Google Developer Groups on Campus</p>
    </div>
  </div>
</body>
</html>`))

type certificateMailer struct {
	provider       Provider
	publicHostname string
}

func NewCertificateMailer(provider Provider, publicHostname string) CertificateSender {
	return &certificateMailer{
		provider:       provider,
		publicHostname: publicHostname,
	}
}

func (m *certificateMailer) SendCertificateIssued(ctx context.Context, msg CertificateIssued) error {
	if msg.To == "" || msg.RecipientName == "" || msg.EventName == "" || msg.UniqueID == "" {
		return fmt.Errorf("certificate email missing required fields")
	}

	validationURL := fmt.Sprintf("https://%s/?cert=%s", m.publicHostname, url.QueryEscape(msg.UniqueID))

	data := struct {
		RecipientName string
		EventName     string
		UniqueID      string
		ValidationURL string
		PDFURL        *string
	}{
		RecipientName: msg.RecipientName,
		EventName:     msg.EventName,
		UniqueID:      msg.UniqueID,
		ValidationURL: validationURL,
		PDFURL:        msg.PDFURL,
	}

	var body bytes.Buffer
	if err := certificateIssuedTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render certificate email: %w", err)
	}

	subject := fmt.Sprintf("Your Certificate for %s", msg.EventName)
	return m.provider.Send(ctx, []string{msg.To}, subject, body.String())
}
