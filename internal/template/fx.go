package template

import (
	"github.com/gdg-oncampus/certhub/internal/template/repository"
	"github.com/gdg-oncampus/certhub/internal/template/service"
	"go.uber.org/fx"
)

var Module = fx.Module("template.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
