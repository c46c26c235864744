package mailer

import (
	"github.com/gdg-oncampus/certhub/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("mailer",
	fx.Provide(NewFromConfig),
	fx.Provide(provideCertificateSender),
)

func NewFromConfig(cfg config.Config, log *zap.Logger) Provider {
	if !cfg.SMTPConfigured() {
		log.Warn("smtp credentials missing, outbound mail disabled")
		return &NoOpProvider{}
	}
	return NewSMTP(Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
}

func provideCertificateSender(cfg config.Config, provider Provider) CertificateSender {
	return NewCertificateMailer(provider, cfg.PublicHostname)
}
