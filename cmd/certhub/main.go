package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gdg-oncampus/certhub/internal/certificate"
	"github.com/gdg-oncampus/certhub/internal/clock"
	"github.com/gdg-oncampus/certhub/internal/config"
	"github.com/gdg-oncampus/certhub/internal/issuer"
	"github.com/gdg-oncampus/certhub/internal/mailer"
	"github.com/gdg-oncampus/certhub/internal/migration"
	"github.com/gdg-oncampus/certhub/internal/observability"
	"github.com/gdg-oncampus/certhub/internal/server"
	"github.com/gdg-oncampus/certhub/internal/template"
	"github.com/gdg-oncampus/certhub/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		mailer.Module,
		issuer.Module,
		certificate.Module,
		template.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
