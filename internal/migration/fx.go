package migration

import (
	certdomain "github.com/gdg-oncampus/certhub/internal/certificate/domain"
	"github.com/gdg-oncampus/certhub/internal/config"
	issuerdomain "github.com/gdg-oncampus/certhub/internal/issuer/domain"
	templatedomain "github.com/gdg-oncampus/certhub/internal/template/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "sqlite" {
			// The versioned SQL below is postgres-specific; sqlite is
			// for local development only and gets the gorm schema.
			return conn.AutoMigrate(
				&issuerdomain.Issuer{},
				&certdomain.Certificate{},
				&templatedomain.EmailTemplate{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
