package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type captureProvider struct {
	to      []string
	subject string
	body    string
}

func (p *captureProvider) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	p.to = to
	p.subject = subject
	p.body = htmlBody
	return nil
}

func TestSendCertificateIssued(t *testing.T) {
	provider := &captureProvider{}
	sender := NewCertificateMailer(provider, "certs.gdg-oncampus.dev")

	err := sender.SendCertificateIssued(context.Background(), CertificateIssued{
		To:            "ada@campus.dev",
		RecipientName: "Ada Lovelace",
		EventName:     "Intro to Go",
		UniqueID:      "GDGOC-ABC123-DEADBEEF",
	})
	require.NoError(t, err)

	require.Equal(t, []string{"ada@campus.dev"}, provider.to)
	require.Equal(t, "Your Certificate for Intro to Go", provider.subject)
	require.Contains(t, provider.body, "https://certs.gdg-oncampus.dev/?cert=GDGOC-ABC123-DEADBEEF")
	require.Contains(t, provider.body, "Ada Lovelace")
	require.NotContains(t, provider.body, "Download PDF")
}

func TestSendCertificateIssuedEscapesName(t *testing.T) {
	provider := &captureProvider{}
	sender := NewCertificateMailer(provider, "certs.gdg-oncampus.dev")

	err := sender.SendCertificateIssued(context.Background(), CertificateIssued{
		To:            "x@campus.dev",
		RecipientName: `<script>alert("x")</script>`,
		EventName:     "Go 101",
		UniqueID:      "GDGOC-1-00000000",
	})
	require.NoError(t, err)
	require.NotContains(t, provider.body, "<script>")
}

func TestSendCertificateIssuedIncludesPDFLink(t *testing.T) {
	provider := &captureProvider{}
	sender := NewCertificateMailer(provider, "certs.gdg-oncampus.dev")

	pdf := "https://cdn.example.com/cert.pdf"
	err := sender.SendCertificateIssued(context.Background(), CertificateIssued{
		To:            "x@campus.dev",
		RecipientName: "Sam",
		EventName:     "Go 101",
		UniqueID:      "GDGOC-2-00000000",
		PDFURL:        &pdf,
	})
	require.NoError(t, err)
	require.Contains(t, provider.body, pdf)
	require.Contains(t, provider.body, "Download PDF")
}

func TestSendCertificateIssuedRequiresFields(t *testing.T) {
	provider := &captureProvider{}
	sender := NewCertificateMailer(provider, "certs.gdg-oncampus.dev")

	err := sender.SendCertificateIssued(context.Background(), CertificateIssued{
		To:        "x@campus.dev",
		EventName: "Go 101",
	})
	require.Error(t, err)
	require.Empty(t, provider.to)
}
