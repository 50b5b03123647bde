package tax

import (
	"github.com/nexoav/nexoav/internal/tax/repository"
	"github.com/nexoav/nexoav/internal/tax/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tax.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
