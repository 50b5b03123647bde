package product

import (
	"github.com/nexoav/nexoav/internal/product/repository"
	"github.com/nexoav/nexoav/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(
		repository.NewRepository,
		service.New,
	),
)
