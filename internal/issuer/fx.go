package issuer

import (
	"github.com/gdg-oncampus/certhub/internal/issuer/repository"
	"github.com/gdg-oncampus/certhub/internal/issuer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("issuer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
