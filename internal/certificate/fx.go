package certificate

import (
	"github.com/gdg-oncampus/certhub/internal/certificate/repository"
	"github.com/gdg-oncampus/certhub/internal/certificate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("certificate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
