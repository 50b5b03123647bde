package company

import (
	"github.com/nexoav/nexoav/internal/company/repository"
	"github.com/nexoav/nexoav/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(
		repository.NewRepository,
		service.New,
	),
)
