package mail_fx

import (
	"go.uber.org/fx"

	"wtsplinks/internal/config"
	"wtsplinks/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(smtpCfg config.SMTPConfig, app config.AppConfig) (services.IMailService, error) {
	return services.NewSMTPMailService(smtpCfg, app)
}
