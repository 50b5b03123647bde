package technician

import (
	"github.com/nexoav/nexoav/internal/technician/repository"
	"github.com/nexoav/nexoav/internal/technician/service"
	"go.uber.org/fx"
)

var Module = fx.Module("technician.service",
	fx.Provide(
		repository.NewRepository,
		service.New,
	),
)
